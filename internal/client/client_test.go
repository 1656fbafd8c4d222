package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio/internal/comments"
	"portfolio/internal/contact"
)

func TestListComments(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/comments" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]comments.Comment{{ID: "1", Name: "Ana", Message: "hi", Timestamp: ts}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	got, err := New(srv.URL + "/").ListComments(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ana" || !got[0].Timestamp.Equal(ts) {
		t.Errorf("unexpected comments: %+v", got)
	}
}

func TestListCommentsNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "null")
	}))
	defer srv.Close()

	got, err := New(srv.URL).ListComments(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestCreateComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["name"] != "Ana" || body["message"] != "Hello" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"abc","name":"Ana","message":"Hello","timestamp":"2024-05-01T10:00:00.123Z"}`)
	}))
	defer srv.Close()

	got, err := New(srv.URL).CreateComment(context.Background(), "Ana", "Hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "abc" || got.Timestamp.Nanosecond() != 123000000 {
		t.Errorf("unexpected comment: %+v", got)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Nama dan pesan harus diisi."}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateComment(context.Background(), "", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Error() != "Nama dan pesan harus diisi." {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestAPIErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListComments(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "server error: Bad Gateway" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAPIErrorDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Failed to send message.","details":"provider rejected"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Contact(context.Background(), contact.Request{Name: "a", Email: "a@b.c", Message: "m"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Details != "provider rejected" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestSubscribeAndContributions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/subscribe", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"message":"Successfully subscribed!","memberId":"m1"}`)
	})
	mux.HandleFunc("/api/github-contributions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"totalContributions":3,"activities":[{"date":"2024-01-01","count":3,"level":2}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)

	sub, err := c.Subscribe(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !sub.Success || sub.MemberID != "m1" {
		t.Errorf("unexpected subscribe response: %+v", sub)
	}

	cal, err := c.Contributions(context.Background())
	if err != nil {
		t.Fatalf("contributions: %v", err)
	}
	if cal.TotalContributions != 3 || len(cal.Activities) != 1 || cal.Activities[0].Level != 2 {
		t.Errorf("unexpected calendar: %+v", cal)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).ListComments(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("network failure should not be an APIError: %v", err)
	}
}
