// Copyright (c) 2026 Inkshelf. All rights reserved.

// Package contact handles the public contact form: validate the
// submission and dispatch a receipt to the sender plus a notification
// to the site owner.
package contact

// Message is one contact-form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// Subjects the form offers.
const (
	SubjectGeneral  = "general"
	SubjectFeedback = "feedback"
	SubjectBug      = "bug"
	SubjectAccount  = "account"
	SubjectOther    = "other"
)

// Subjects lists the accepted subject values in form order.
func Subjects() []string {
	return []string{SubjectGeneral, SubjectFeedback, SubjectBug, SubjectAccount, SubjectOther}
}

const (
	MaxNameLen    = 200
	MaxMessageLen = 5000
)
