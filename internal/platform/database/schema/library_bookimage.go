package schema

// LibraryBookImageTable represents the 'library.bookimage' table
type LibraryBookImageTable struct {
	Table       string
	ID          string
	BookID      string
	URL         string
	StoragePath string
	IsPrimary   string
	Caption     string
	UploadedAt  string
}

// LibraryBookImage is the schema definition for library.bookimage
var LibraryBookImage = LibraryBookImageTable{
	Table:       "library.bookimage",
	ID:          "id",
	BookID:      "bookid",
	URL:         "url",
	StoragePath: "storagepath",
	IsPrimary:   "isprimary",
	Caption:     "caption",
	UploadedAt:  "uploadedat",
}

func (t LibraryBookImageTable) Columns() []string {
	return []string{t.ID, t.BookID, t.URL, t.StoragePath, t.IsPrimary, t.Caption, t.UploadedAt}
}
