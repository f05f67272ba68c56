package webdoc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/oscalgen/config"
)

func testFetchConfig() config.FetchConfig {
	return config.FetchConfig{
		Timeout:           5 * time.Second,
		MaxSize:           1024,
		MaxRedirects:      5,
		AllowPrivateHosts: true,
	}
}

func TestFetcherRejectsBlockedURL(t *testing.T) {
	cfg := testFetchConfig()
	cfg.AllowPrivateHosts = false
	f := NewFetcher(cfg)

	_, err := f.Fetch(context.Background(), "https://192.168.1.1/doc")
	if err == nil {
		t.Fatal("Fetch(private IP) = nil error, want rejection")
	}
}

func TestFetcherFetchesContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "oscalgen/") {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte("<html><body>policy text</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig())
	result, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", result.StatusCode)
	}
	if !strings.Contains(string(result.Body), "policy text") {
		t.Errorf("Body = %q", result.Body)
	}
	if result.ETag != `"v1"` {
		t.Errorf("ETag = %q, want %q", result.ETag, `"v1"`)
	}
	if !strings.HasPrefix(result.ContentType, "text/html") {
		t.Errorf("ContentType = %q", result.ContentType)
	}
}

func TestFetcherConditionalFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig())
	result, err := f.FetchWithETag(context.Background(), srv.URL, `"v1"`)
	if err != nil {
		t.Fatalf("FetchWithETag() error = %v", err)
	}
	if result.StatusCode != http.StatusNotModified {
		t.Errorf("StatusCode = %d, want 304", result.StatusCode)
	}
	if len(result.Body) != 0 {
		t.Errorf("Body = %q, want empty on 304", result.Body)
	}
}

func TestFetcherEnforcesSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 4096))
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig())
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "content too large") {
		t.Fatalf("Fetch(oversized) error = %v, want size limit error", err)
	}
}

func TestFetcherHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig())
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("Fetch(404) error = %v, want HTTP 404 error", err)
	}
}
