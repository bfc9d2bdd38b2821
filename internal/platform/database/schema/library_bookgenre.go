package schema

// LibraryBookGenreTable represents the 'library.bookgenre' junction table
type LibraryBookGenreTable struct {
	Table   string
	BookID  string
	GenreID string
}

// LibraryBookGenre is the schema definition for library.bookgenre
var LibraryBookGenre = LibraryBookGenreTable{
	Table:   "library.bookgenre",
	BookID:  "bookid",
	GenreID: "genreid",
}
