package schema

// LibraryBookTable represents the 'library.book' table
type LibraryBookTable struct {
	Table          string
	ID             string
	UserID         string
	Title          string
	Author         string
	ISBN           string
	CoverImageURL  string
	Covers         string
	Publisher      string
	PublishedDate  string
	PhysicalFormat string
	PageCount      string
	Rating         string
	SeriesID       string
	SeriesPosition string
	Notes          string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
}

// LibraryBook is the schema definition for library.book
var LibraryBook = LibraryBookTable{
	Table:          "library.book",
	ID:             "id",
	UserID:         "userid",
	Title:          "title",
	Author:         "author",
	ISBN:           "isbn",
	CoverImageURL:  "coverimageurl",
	Covers:         "covers",
	Publisher:      "publisher",
	PublishedDate:  "publisheddate",
	PhysicalFormat: "physicalformat",
	PageCount:      "pagecount",
	Rating:         "rating",
	SeriesID:       "seriesid",
	SeriesPosition: "seriesposition",
	Notes:          "notes",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
}

func (t LibraryBookTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PhysicalFormat, t.PageCount, t.Rating,
		t.SeriesID, t.SeriesPosition, t.Notes, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
