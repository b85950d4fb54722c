package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/soletra/backdrop-backend/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeRequest(t *testing.T, r *http.Request) gqlRequest {
	t.Helper()
	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return req
}

func TestClient_List_SinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Store-Access-Token"); got != "tok" {
			t.Errorf("expected access token header, got %q", got)
		}
		req := decodeRequest(t, r)
		if !strings.Contains(req.Query, "ListRecords") {
			t.Errorf("unexpected query: %s", req.Query)
		}
		if req.Variables["first"] != float64(50) {
			t.Errorf("expected first=50, got %v", req.Variables["first"])
		}
		io.WriteString(w, `{"data":{"records":{
			"nodes":[{"id":"r1","handle":"aurora","updatedAt":"2024-05-01T00:00:00Z",
				"fields":[{"key":"title","value":"Aurora"}]}],
			"pageInfo":{"endCursor":"c1","hasNextPage":false}}}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "background_preset", discardLogger())
	page, err := c.List(context.Background(), 50, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].ID != "r1" {
		t.Fatalf("unexpected records: %+v", page.Records)
	}
	if page.NextCursor != "" {
		t.Errorf("expected no next cursor, got %q", page.NextCursor)
	}
}

func TestClient_List_ForwardsCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Variables["after"] != "c1" {
			t.Errorf("expected after=c1, got %v", req.Variables["after"])
		}
		io.WriteString(w, `{"data":{"records":{"nodes":[],"pageInfo":{"endCursor":"c2","hasNextPage":true}}}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "background_preset", discardLogger())
	page, err := c.List(context.Background(), 50, "c1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.NextCursor != "c2" {
		t.Errorf("expected next cursor c2, got %q", page.NextCursor)
	}
}

func TestClient_GetByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"record":null}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "background_preset", discardLogger())
	rec, err := c.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}

func TestClient_Create_UserErrorsAggregated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"recordCreate":{"record":null,
			"userErrors":[{"message":"handle taken"},{"message":"title required"}]}}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "background_preset", discardLogger())
	err := c.Create(context.Background(), []Field{{Key: "title", Value: ""}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "handle taken; title required") {
		t.Errorf("expected aggregated messages, got %q", err.Error())
	}
}

func TestClient_Update_StripsReferencesFromInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if strings.Contains(string(raw), "references") {
			t.Error("mutation input must not carry references")
		}
		io.WriteString(w, `{"data":{"recordUpdate":{"record":{"id":"r1"},"userErrors":[]}}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "background_preset", discardLogger())
	fields := []Field{{Key: "title", Value: "x", References: []Reference{{ID: "m1", URL: "u", MediaType: "image/png"}}}}
	if err := c.Update(context.Background(), "r1", fields); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
}

func TestClient_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":null,"errors":[{"message":"throttled"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "background_preset", discardLogger())
	err := c.Delete(context.Background(), "r1")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "throttled") {
		t.Errorf("expected remote message, got %q", err.Error())
	}
}

func TestClient_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `{"data":{"record":{"id":"r1","handle":"h","updatedAt":"t","fields":[]}}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "background_preset", discardLogger())
	rec, err := c.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID failed after retry: %v", err)
	}
	if rec == nil || rec.ID != "r1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls (one retry), got %d", calls.Load())
	}
}

func TestClient_UnreachableStore(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "tok", "background_preset", discardLogger())
	_, err := c.List(context.Background(), 10, "")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}
