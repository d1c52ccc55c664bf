package pathutil_test

import (
	"errors"
	"testing"

	"newsportal/internal/handler/http/pathutil"
)

func TestExtractID(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{"valid", "/news/123", "/news/", 123, false},
		{"large id", "/news/9223372036854775807", "/news/", 9223372036854775807, false},
		{"zero", "/news/0", "/news/", 0, true},
		{"negative", "/news/-1", "/news/", 0, true},
		{"not a number", "/news/abc", "/news/", 0, true},
		{"empty", "/news/", "/news/", 0, true},
		{"trailing garbage", "/news/12x", "/news/", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pathutil.ExtractID(tc.path, tc.prefix)
			if tc.wantErr {
				if !errors.Is(err, pathutil.ErrInvalidID) {
					t.Fatalf("expected ErrInvalidID, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ExtractID=%d err=%v, want %d", got, err, tc.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/news/123", "/news/:id"},
		{"/news/123/", "/news/:id"},
		{"/news/123?page=2", "/news/:id"},
		{"/news/latest", "/news/latest"},
		{"/news", "/news"},
		{"/language/en", "/language/:code"},
		{"/language/ru", "/language/:code"},
		{"/healthz", "/healthz"},
		{"/metrics", "/metrics"},
		{"/auth/token", "/auth/token"},
		{"/unknown/path/123", "/unknown/path/123"},
	}
	for _, tc := range cases {
		if got := pathutil.NormalizePath(tc.in); got != tc.want {
			t.Fatalf("NormalizePath(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}
