// Package subscribe adds newsletter subscribers to a Mailchimp audience.
package subscribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMemberExists is returned when the address is already on the audience.
var ErrMemberExists = errors.New("member exists")

// ProviderError is a non-2xx answer from the Mailchimp API.
type ProviderError struct {
	Status int
	Title  string
	Detail string
}

func (e *ProviderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("mailchimp %d %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("mailchimp %d %s", e.Status, e.Title)
}

// Member is the subset of the Mailchimp list member we use.
type Member struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

// Subscriber adds addresses to a mailing list.
type Subscriber interface {
	Subscribe(ctx context.Context, audienceID, email string) (*Member, error)
}

// Mailchimp talks to the Marketing API v3.
type Mailchimp struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMailchimp creates a client for the data center serverPrefix (e.g. "us21").
func NewMailchimp(apiKey, serverPrefix string) *Mailchimp {
	return NewMailchimpWithURL(fmt.Sprintf("https://%s.api.mailchimp.com/3.0", serverPrefix), apiKey, nil)
}

// NewMailchimpWithURL points the client at baseURL, used by tests.
func NewMailchimpWithURL(baseURL, apiKey string, httpClient *http.Client) *Mailchimp {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Mailchimp{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}
}

func (m *Mailchimp) Subscribe(ctx context.Context, audienceID, email string) (*Member, error) {
	body, err := json.Marshal(map[string]string{
		"email_address": email,
		"status":        "subscribed",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/lists/%s/members", m.baseURL, audienceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth("portfolio", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &ProviderError{Status: resp.StatusCode}
		var problem struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &problem) == nil {
			perr.Title, perr.Detail = problem.Title, problem.Detail
		}
		if perr.Title == "Member Exists" {
			return nil, fmt.Errorf("%w: %s", ErrMemberExists, perr.Detail)
		}
		return nil, perr
	}

	var member Member
	if err := json.Unmarshal(respBody, &member); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if member.ID == "" {
		return nil, errors.New("unexpected response from Mailchimp: missing member id")
	}
	return &member, nil
}
