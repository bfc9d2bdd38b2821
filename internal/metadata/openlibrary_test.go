// Copyright (c) 2026 Inkshelf. All rights reserved.

package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

func TestOpenLibraryClient_LookupISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/isbn/9780306406157.json":
			writer.Write([]byte(`{
				"key": "/books/OL123M",
				"title": "The Left Hand of Darkness",
				"authors": [{"key": "/authors/OL26A"}],
				"publishers": ["Ace Books"],
				"publish_date": "1969",
				"number_of_pages": 304,
				"subjects": ["Science fiction", "Gethen"]
			}`))
		case "/authors/OL26A.json":
			writer.Write([]byte(`{"name": "Ursula K. Le Guin"}`))
		default:
			http.NotFound(writer, request)
		}
	}))
	defer server.Close()

	client := NewOpenLibraryClient(server.URL)

	record, err := client.LookupISBN(context.Background(), "9780306406157")
	require.NoError(t, err)
	assert.Equal(t, "The Left Hand of Darkness", record.Title)
	assert.Equal(t, "Ursula K. Le Guin", record.Author)
	assert.Equal(t, "9780306406157", record.ISBN)
	assert.Equal(t, "Ace Books", record.Publisher)
	assert.Equal(t, "1969", record.PublishedDate)
	assert.Equal(t, 304, record.PageCount)
	assert.Equal(t, []string{"Science fiction", "Gethen"}, record.Subjects)
	assert.Contains(t, record.Covers["openlibrary"], "9780306406157")
	assert.Equal(t, "/books/OL123M", record.SourceKey)
}

func TestOpenLibraryClient_LookupISBN_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewOpenLibraryClient(server.URL)

	_, err := client.LookupISBN(context.Background(), "9780306406157")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestOpenLibraryClient_LookupISBN_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewOpenLibraryClient(server.URL)

	_, err := client.LookupISBN(context.Background(), "9780306406157")
	require.Error(t, err)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)
}

func TestOpenLibraryClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/search.json", request.URL.Path)
		assert.Equal(t, "earthsea", request.URL.Query().Get("q"))

		writer.Write([]byte(`{
			"numFound": 2,
			"docs": [
				{
					"key": "/works/OL1W",
					"title": "A Wizard of Earthsea",
					"author_name": ["Ursula K. Le Guin"],
					"first_publish_year": 1968,
					"publisher": ["Parnassus Press"],
					"isbn": ["9780547773742"]
				},
				{
					"key": "/works/OL2W",
					"title": "The Tombs of Atuan",
					"author_name": ["Ursula K. Le Guin"],
					"cover_i": 240727
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewOpenLibraryClient(server.URL)

	records, err := client.Search(context.Background(), "earthsea")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "A Wizard of Earthsea", records[0].Title)
	assert.Equal(t, "9780547773742", records[0].ISBN)
	assert.Equal(t, "1968", records[0].PublishedDate)
	assert.Contains(t, records[0].Covers["openlibrary"], "isbn/9780547773742")

	assert.Equal(t, "The Tombs of Atuan", records[1].Title)
	assert.Empty(t, records[1].ISBN)
	assert.Contains(t, records[1].Covers["openlibrary"], "id/240727")
}
