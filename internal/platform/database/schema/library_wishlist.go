package schema

// LibraryWishlistTable represents the 'library.wishlist' table
type LibraryWishlistTable struct {
	Table         string
	ID            string
	UserID        string
	Title         string
	Author        string
	ISBN          string
	CoverImageURL string
	Covers        string
	Publisher     string
	PublishedDate string
	PageCount     string
	Priority      string
	Notes         string
	CreatedAt     string
	UpdatedAt     string
}

// LibraryWishlist is the schema definition for library.wishlist
var LibraryWishlist = LibraryWishlistTable{
	Table:         "library.wishlist",
	ID:            "id",
	UserID:        "userid",
	Title:         "title",
	Author:        "author",
	ISBN:          "isbn",
	CoverImageURL: "coverimageurl",
	Covers:        "covers",
	Publisher:     "publisher",
	PublishedDate: "publisheddate",
	PageCount:     "pagecount",
	Priority:      "priority",
	Notes:         "notes",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t LibraryWishlistTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PageCount, t.Priority, t.Notes, t.CreatedAt, t.UpdatedAt,
	}
}
