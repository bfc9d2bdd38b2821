package schema

// SystemPreferenceTable represents the 'system.preference' table
type SystemPreferenceTable struct {
	Table     string
	UserID    string
	Key       string
	Value     string
	UpdatedAt string
}

// SystemPreference is the schema definition for system.preference
var SystemPreference = SystemPreferenceTable{
	Table:     "system.preference",
	UserID:    "userid",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updatedat",
}
