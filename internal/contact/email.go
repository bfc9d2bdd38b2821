// Copyright (c) 2026 Inkshelf. All rights reserved.

package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Email is one outbound transactional message.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// EmailSender delivers transactional email.
type EmailSender interface {
	Send(context context.Context, email Email) error
}

// HTTPEmailClient posts messages to an HTTP email delivery API
// authenticated with a bearer key.
type HTTPEmailClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewHTTPEmailClient(apiURL, apiKey string) *HTTPEmailClient {
	return &HTTPEmailClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

func (client *HTTPEmailClient) Send(context context.Context, email Email) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("email_marshal_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(
		context, http.MethodPost, client.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("email_request_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("email_send_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("email_send_failed: status %d: %s", response.StatusCode, body)
	}
	return nil
}
