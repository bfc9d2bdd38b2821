package schema

// CoreGenreTable represents the 'core.genre' table
type CoreGenreTable struct {
	Table     string
	ID        string
	UserID    string
	Name      string
	Color     string
	BookCount string
	CreatedAt string
	UpdatedAt string
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = CoreGenreTable{
	Table:     "core.genre",
	ID:        "id",
	UserID:    "userid",
	Name:      "name",
	Color:     "color",
	BookCount: "bookcount",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreGenreTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Name, t.Color, t.BookCount, t.CreatedAt, t.UpdatedAt}
}
