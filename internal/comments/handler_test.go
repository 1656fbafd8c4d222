package comments

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	RegisterRoutes(r.Group("/api"), h)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateHandler_Success(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(NewService(store))

	w := doRequest(r, http.MethodPost, "/api/comments", `{"name":"Alice","message":"Hello!"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["id"] == "" || body["id"] == nil {
		t.Errorf("Expected id, got %v", body["id"])
	}
	if body["name"] != "Alice" {
		t.Errorf("Expected name Alice, got %v", body["name"])
	}
	if body["message"] != "Hello!" {
		t.Errorf("Expected message Hello!, got %v", body["message"])
	}
	ts, ok := body["timestamp"].(string)
	if !ok {
		t.Fatalf("Expected timestamp string, got %T", body["timestamp"])
	}
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("timestamp %q is not ISO-8601: %v", ts, err)
	}
	if store.count() != 1 {
		t.Errorf("Expected 1 stored comment, got %d", store.count())
	}
}

func TestCreateHandler_InvalidPayloads(t *testing.T) {
	payloads := map[string]string{
		"empty name":      `{"name":"","message":"Hi"}`,
		"blank message":   `{"name":"Bob","message":"   "}`,
		"missing name":    `{"message":"Hi"}`,
		"missing message": `{"name":"Bob"}`,
		"numeric name":    `{"name":42,"message":"Hi"}`,
		"object message":  `{"name":"Bob","message":{"text":"Hi"}}`,
		"array message":   `{"name":"Bob","message":["Hi"]}`,
		"null name":       `{"name":null,"message":"Hi"}`,
		"malformed json":  `{"name":"Bob",`,
		"non-object body": `["Bob","Hi"]`,
		"empty body":      ``,
		"boolean fields":  `{"name":true,"message":false}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{}
			r := newTestRouter(NewService(store))

			w := doRequest(r, http.MethodPost, "/api/comments", payload)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body["error"] != "Nama dan pesan harus diisi." {
				t.Errorf("Unexpected error message %q", body["error"])
			}
			if store.count() != 0 {
				t.Errorf("Expected no write, store has %d", store.count())
			}
		})
	}
}

func TestCreateHandler_StoreFailure(t *testing.T) {
	r := newTestRouter(NewService(&fakeStore{insertErr: errors.New("write timeout")}))

	w := doRequest(r, http.MethodPost, "/api/comments", `{"name":"Alice","message":"Hello!"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Gagal memposting komentar.") {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "write timeout") {
		t.Error("store error detail must not leak to the client")
	}
}

func TestListHandler_NewestFirst(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	store := &fakeStore{
		items: []Comment{
			{ID: "a", Name: "T1", Message: "older", Timestamp: t1},
			{ID: "b", Name: "T2", Message: "newer", Timestamp: t2},
		},
	}
	r := newTestRouter(NewService(store))

	w := doRequest(r, http.MethodGet, "/api/comments", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got []Comment
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("Expected [b a], got %+v", got)
	}
}

func TestListHandler_EmptyArray(t *testing.T) {
	r := newTestRouter(NewService(&fakeStore{}))

	w := doRequest(r, http.MethodGet, "/api/comments", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected [], got %s", w.Body.String())
	}
}

func TestListHandler_StoreUnreachable(t *testing.T) {
	r := newTestRouter(NewService(&fakeStore{listErr: errors.New("server selection timeout")}))

	w := doRequest(r, http.MethodGet, "/api/comments", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["error"] != "Gagal mengambil komentar." {
		t.Errorf("Unexpected error message %q", body["error"])
	}
}

func TestHandlers_CreateThenListRoundTrip(t *testing.T) {
	r := newTestRouter(NewService(&fakeStore{}))

	w := doRequest(r, http.MethodPost, "/api/comments", `{"name":" Alice ","message":"Hello!"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	var created Comment
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}

	w = doRequest(r, http.MethodGet, "/api/comments", "")
	var listed []Comment
	if err := json.NewDecoder(w.Body).Decode(&listed); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(listed))
	}
	if listed[0].ID != created.ID || listed[0].Name != "Alice" || listed[0].Message != created.Message {
		t.Errorf("listed %+v does not match created %+v", listed[0], created)
	}
	if !listed[0].Timestamp.Equal(created.Timestamp) {
		t.Errorf("listed timestamp %v, created %v", listed[0].Timestamp, created.Timestamp)
	}
}
