// Copyright (c) 2026 Inkshelf. All rights reserved.

package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	"github.com/inkshelf/inkshelf/internal/platform/validate"
)

type Service struct {
	sender    EmailSender
	from      string
	recipient string
	logger    *slog.Logger
}

// NewService wires the delivery client with the configured sender and
// site-owner addresses.
func NewService(sender EmailSender, from, recipient string, logger *slog.Logger) *Service {
	return &Service{sender: sender, from: from, recipient: recipient, logger: logger}
}

// Submit validates a contact-form message and dispatches both the
// receipt to the sender and the notification to the site owner. Either
// delivery failing fails the submission.
func (service *Service) Submit(context context.Context, message Message) error {
	message.Name = strings.TrimSpace(message.Name)
	message.Email = strings.TrimSpace(message.Email)
	message.Body = strings.TrimSpace(message.Body)

	v := &validate.Validator{}
	v.Required("name", message.Name).MaxLen("name", message.Name, MaxNameLen)
	v.Required("email", message.Email)
	if message.Email != "" {
		v.Email("email", message.Email)
	}
	v.OneOf("subject", message.Subject, Subjects()...)
	v.Required("message", message.Body).MaxLen("message", message.Body, MaxMessageLen)
	if err := v.Err(); err != nil {
		return err
	}

	receipt := Email{
		From:    service.from,
		To:      message.Email,
		Subject: "We received your message",
		Text: fmt.Sprintf(
			"Hi %s,\n\nThanks for getting in touch. We'll reply to you at this address.\n\nYour message:\n%s\n",
			message.Name, message.Body),
	}
	notification := Email{
		From:    service.from,
		To:      service.recipient,
		Subject: fmt.Sprintf("Contact form: %s", message.Subject),
		Text: fmt.Sprintf(
			"From: %s <%s>\nSubject: %s\n\n%s\n",
			message.Name, message.Email, message.Subject, message.Body),
	}

	for _, email := range []Email{receipt, notification} {
		if err := service.sender.Send(context, email); err != nil {
			service.logger.Error("contact_email_failed", "to", email.To, "error", err)
			return apperr.Internal(err)
		}
	}

	service.logger.Info("contact_message_sent", "subject", message.Subject)
	return nil
}
