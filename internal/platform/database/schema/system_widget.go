package schema

// SystemWidgetTable represents the 'system.widget' table
type SystemWidgetTable struct {
	Table     string
	UserID    string
	Kind      string
	Enabled   string
	Position  string
	Size      string
	Settings  string
	UpdatedAt string
}

// SystemWidget is the schema definition for system.widget
var SystemWidget = SystemWidgetTable{
	Table:     "system.widget",
	UserID:    "userid",
	Kind:      "kind",
	Enabled:   "enabled",
	Position:  "position",
	Size:      "size",
	Settings:  "settings",
	UpdatedAt: "updatedat",
}
