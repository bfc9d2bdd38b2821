// Copyright (c) 2026 Inkshelf. All rights reserved.

package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/pkg/pointer"
)

func TestStatus(t *testing.T) {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(48 * time.Hour)

	tests := []struct {
		name  string
		reads []book.Read
		want  book.ReadingStatus
	}{
		{"no_history", nil, book.StatusWantToRead},
		{"empty_history", []book.Read{}, book.StatusWantToRead},
		{
			"in_progress",
			[]book.Read{{Position: 1, StartedAt: pointer.To(started)}},
			book.StatusReading,
		},
		{
			"finished",
			[]book.Read{{Position: 1, StartedAt: pointer.To(started), FinishedAt: pointer.To(finished)}},
			book.StatusFinished,
		},
		{
			"reread_in_progress",
			[]book.Read{
				{Position: 1, StartedAt: pointer.To(started), FinishedAt: pointer.To(finished)},
				{Position: 2, StartedAt: pointer.To(finished.Add(time.Hour))},
			},
			book.StatusReading,
		},
		{
			// Finished without an explicit start still counts as finished.
			"finished_without_start",
			[]book.Read{{Position: 1, FinishedAt: pointer.To(finished)}},
			book.StatusFinished,
		},
		{
			// Malformed last entry must not panic; it reads as not started.
			"malformed_last_entry",
			[]book.Read{{Position: 1}},
			book.StatusWantToRead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, book.Status(tt.reads))
		})
	}
}

func TestBook_CurrentRead(t *testing.T) {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(time.Hour)

	t.Run("none_when_empty", func(t *testing.T) {
		b := &book.Book{}
		assert.Nil(t, b.CurrentRead())
	})

	t.Run("none_when_finished", func(t *testing.T) {
		b := &book.Book{Reads: []book.Read{
			{Position: 1, StartedAt: pointer.To(started), FinishedAt: pointer.To(finished)},
		}}
		assert.Nil(t, b.CurrentRead())
	})

	t.Run("returns_last_open_entry", func(t *testing.T) {
		b := &book.Book{Reads: []book.Read{
			{ID: "r1", Position: 1, StartedAt: pointer.To(started), FinishedAt: pointer.To(finished)},
			{ID: "r2", Position: 2, StartedAt: pointer.To(finished.Add(time.Minute))},
		}}
		current := b.CurrentRead()
		assert.NotNil(t, current)
		assert.Equal(t, "r2", current.ID)
	})
}

func TestBook_LastFinishedAt(t *testing.T) {
	first := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("nil_when_never_finished", func(t *testing.T) {
		b := &book.Book{Reads: []book.Read{{Position: 1, StartedAt: pointer.To(first)}}}
		assert.Nil(t, b.LastFinishedAt())
	})

	t.Run("skips_open_reread", func(t *testing.T) {
		b := &book.Book{Reads: []book.Read{
			{Position: 1, StartedAt: pointer.To(first), FinishedAt: pointer.To(second)},
			{Position: 2, StartedAt: pointer.To(second.Add(time.Hour))},
		}}
		got := b.LastFinishedAt()
		assert.NotNil(t, got)
		assert.Equal(t, second, *got)
	})
}
