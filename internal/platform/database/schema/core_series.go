package schema

// CoreSeriesTable represents the 'core.series' table
type CoreSeriesTable struct {
	Table       string
	ID          string
	UserID      string
	Name        string
	Description string
	TotalBooks  string
	CreatedAt   string
	UpdatedAt   string
}

// CoreSeries is the schema definition for core.series
var CoreSeries = CoreSeriesTable{
	Table:       "core.series",
	ID:          "id",
	UserID:      "userid",
	Name:        "name",
	Description: "description",
	TotalBooks:  "totalbooks",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreSeriesTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Name, t.Description, t.TotalBooks, t.CreatedAt, t.UpdatedAt}
}
