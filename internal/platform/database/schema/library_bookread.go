package schema

// LibraryBookReadTable represents the 'library.bookread' table
type LibraryBookReadTable struct {
	Table      string
	ID         string
	BookID     string
	Position   string
	StartedAt  string
	FinishedAt string
}

// LibraryBookRead is the schema definition for library.bookread
var LibraryBookRead = LibraryBookReadTable{
	Table:      "library.bookread",
	ID:         "id",
	BookID:     "bookid",
	Position:   "position",
	StartedAt:  "startedat",
	FinishedAt: "finishedat",
}

func (t LibraryBookReadTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Position, t.StartedAt, t.FinishedAt}
}
