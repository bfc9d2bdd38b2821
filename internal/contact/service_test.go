// Copyright (c) 2026 Inkshelf. All rights reserved.

package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

type fakeSender struct {
	sent    []Email
	failAll bool
}

func (f *fakeSender) Send(_ context.Context, email Email) error {
	if f.failAll {
		return errors.New("smtp gateway down")
	}
	f.sent = append(f.sent, email)
	return nil
}

func testService(sender *fakeSender) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(sender, "no-reply@inkshelf.app", "hello@inkshelf.app", logger)
}

func validMessage() Message {
	return Message{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: SubjectFeedback,
		Body:    "Love the series planner.",
	}
}

func TestService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Message)
	}{
		{"missing_name", func(m *Message) { m.Name = "  " }},
		{"missing_email", func(m *Message) { m.Email = "" }},
		{"bad_email", func(m *Message) { m.Email = "not-an-address" }},
		{"unknown_subject", func(m *Message) { m.Subject = "complaint" }},
		{"missing_message", func(m *Message) { m.Body = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			message := validMessage()
			tt.mutate(&message)

			err := testService(sender).Submit(context.Background(), message)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestService_Submit_SendsBothEmails(t *testing.T) {
	sender := &fakeSender{}

	err := testService(sender).Submit(context.Background(), validMessage())
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	receipt, notification := sender.sent[0], sender.sent[1]
	assert.Equal(t, "ada@example.com", receipt.To)
	assert.Contains(t, receipt.Text, "Love the series planner.")
	assert.Equal(t, "hello@inkshelf.app", notification.To)
	assert.Contains(t, notification.Text, "Ada <ada@example.com>")
	assert.Contains(t, notification.Subject, SubjectFeedback)
}

func TestService_Submit_DeliveryFailure(t *testing.T) {
	sender := &fakeSender{failAll: true}

	err := testService(sender).Submit(context.Background(), validMessage())
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
}
