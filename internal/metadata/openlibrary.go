// Copyright (c) 2026 Inkshelf. All rights reserved.

package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

const userAgent = "Inkshelf/1.0 (https://inkshelf.app)"

// searchLimit caps how many search results one query returns.
const searchLimit = 8

// OpenLibraryClient is a rate-limited OpenLibrary API client.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewOpenLibraryClient builds a client against baseURL (the production API
// or a test server). OpenLibrary asks unauthenticated clients to stay
// around one request per second.
func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

// LookupISBN fetches the edition record for a normalized ISBN.
func (client *OpenLibraryClient) LookupISBN(context context.Context, isbn string) (*BookMetadata, error) {
	var edition openLibraryEdition
	if err := client.getJSON(context, fmt.Sprintf("/isbn/%s.json", isbn), &edition); err != nil {
		return nil, err
	}

	record := &BookMetadata{
		Title:         edition.Title,
		ISBN:          isbn,
		PublishedDate: edition.PublishDate,
		PageCount:     edition.NumberOfPages,
		SourceKey:     edition.Key,
		Covers: map[string]string{
			"openlibrary": fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", isbn),
		},
	}
	if len(edition.Publishers) > 0 {
		record.Publisher = edition.Publishers[0]
	}
	if len(edition.Subjects) > maxSubjects {
		record.Subjects = edition.Subjects[:maxSubjects]
	} else {
		record.Subjects = edition.Subjects
	}

	// Edition records reference authors by key only.
	if len(edition.Authors) > 0 {
		if name, err := client.fetchAuthorName(context, edition.Authors[0].Key); err == nil {
			record.Author = name
		}
	}
	return record, nil
}

// Search runs a free-text query and maps the top documents.
func (client *OpenLibraryClient) Search(context context.Context, query string) ([]*BookMetadata, error) {
	path := fmt.Sprintf("/search.json?q=%s&limit=%d", url.QueryEscape(query), searchLimit)

	var result openLibrarySearchResult
	if err := client.getJSON(context, path, &result); err != nil {
		return nil, err
	}

	records := make([]*BookMetadata, 0, len(result.Docs))
	for i := range result.Docs {
		records = append(records, docToMetadata(&result.Docs[i]))
	}
	return records, nil
}

func docToMetadata(doc *openLibrarySearchDoc) *BookMetadata {
	record := &BookMetadata{
		Title:     doc.Title,
		SourceKey: doc.Key,
	}
	if len(doc.AuthorName) > 0 {
		record.Author = doc.AuthorName[0]
	}
	if len(doc.Publisher) > 0 {
		record.Publisher = doc.Publisher[0]
	}
	if doc.FirstPublishYear != 0 {
		record.PublishedDate = fmt.Sprintf("%d", doc.FirstPublishYear)
	}
	if len(doc.ISBN) > 0 {
		record.ISBN = doc.ISBN[0]
	}

	switch {
	case record.ISBN != "":
		record.Covers = map[string]string{
			"openlibrary": fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", record.ISBN),
		}
	case doc.CoverI != 0:
		record.Covers = map[string]string{
			"openlibrary": fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", doc.CoverI),
		}
	}

	if len(doc.Subject) > maxSubjects {
		record.Subjects = doc.Subject[:maxSubjects]
	} else {
		record.Subjects = doc.Subject
	}
	return record
}

func (client *OpenLibraryClient) fetchAuthorName(context context.Context, authorKey string) (string, error) {
	var author struct {
		Name string `json:"name"`
	}
	if err := client.getJSON(context, authorKey+".json", &author); err != nil {
		return "", err
	}
	return author.Name, nil
}

// getJSON performs one rate-limited GET against the API.
func (client *OpenLibraryClient) getJSON(context context.Context, path string, target any) error {
	if err := client.limiter.Wait(context); err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("metadata_request_failed: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.ServiceUnavailable("book catalogue is unreachable")
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return apperr.NotFound("book metadata")
	case response.StatusCode != http.StatusOK:
		return apperr.ServiceUnavailable(
			fmt.Sprintf("book catalogue returned status %d", response.StatusCode))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("metadata_decode_failed: %w", err)
	}
	return nil
}

// OpenLibrary wire types

type openLibraryEdition struct {
	Key           string      `json:"key"`
	Title         string      `json:"title"`
	Authors       []authorRef `json:"authors"`
	Publishers    []string    `json:"publishers"`
	PublishDate   string      `json:"publish_date"`
	NumberOfPages int         `json:"number_of_pages"`
	Subjects      []string    `json:"subjects"`
}

type authorRef struct {
	Key string `json:"key"`
}

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
	ISBN             []string `json:"isbn"`
	CoverI           int      `json:"cover_i"`
	Subject          []string `json:"subject"`
}
