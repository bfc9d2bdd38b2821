package schema

// CoreSeriesExpectedTable represents the 'core.seriesexpected' table
type CoreSeriesExpectedTable struct {
	Table    string
	ID       string
	SeriesID string
	Title    string
	ISBN     string
	Position string
}

// CoreSeriesExpected is the schema definition for core.seriesexpected
var CoreSeriesExpected = CoreSeriesExpectedTable{
	Table:    "core.seriesexpected",
	ID:       "id",
	SeriesID: "seriesid",
	Title:    "title",
	ISBN:     "isbn",
	Position: "position",
}
