package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"newsportal/internal/handler/http/requestid"
)

func TestFromContext(t *testing.T) {
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Fatalf("empty context returned %q", got)
	}

	ctx := requestid.WithRequestID(context.Background(), "req-42")
	if got := requestid.FromContext(ctx); got != "req-42" {
		t.Fatalf("FromContext=%q, want req-42", got)
	}

	// A value of the wrong type must not be mistaken for an ID.
	ctx = context.WithValue(context.Background(), requestid.RequestIDKey, 7)
	if got := requestid.FromContext(ctx); got != "" {
		t.Fatalf("non-string value returned %q", got)
	}
}

func TestMiddleware_PropagatesClientID(t *testing.T) {
	var seen string
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	req.Header.Set(requestid.RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "client-supplied-id" {
		t.Fatalf("context id=%q", seen)
	}
	if got := rec.Header().Get(requestid.RequestIDHeader); got != "client-supplied-id" {
		t.Fatalf("response header=%q", got)
	}
}

func TestMiddleware_GeneratesID(t *testing.T) {
	var seen string
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("generated id %q is not a uuid: %v", seen, err)
	}
	if got := rec.Header().Get(requestid.RequestIDHeader); got != seen {
		t.Fatalf("response header=%q, context id=%q", got, seen)
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	ids := make(map[string]bool)
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[requestid.FromContext(r.Context())] = true
	}))

	for i := 0; i < 5; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news", nil))
	}

	if len(ids) != 5 {
		t.Fatalf("got %d distinct ids, want 5", len(ids))
	}
}
