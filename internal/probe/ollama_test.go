package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckOllamaVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":"0.5.1"}`))
	}))
	defer srv.Close()

	msg, err := CheckOllamaVersion(context.Background(), srv.URL+"/api/version", 2*time.Second, 0)
	if err != nil {
		t.Fatalf("expected pass, got error: %v", err)
	}
	if msg != "Connected to Ollama (version 0.5.1)" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

// A body that is not the expected shape still passes — connection success
// is the criterion, the version string is garnish.
func TestCheckOllamaVersionLenientBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	msg, err := CheckOllamaVersion(context.Background(), srv.URL, 2*time.Second, 0)
	if err != nil {
		t.Fatalf("expected pass, got error: %v", err)
	}
	if msg != "Connected to Ollama" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

// A non-2xx version endpoint still counts as connected.
func TestCheckOllamaVersionNon2xxStillConnects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	msg, err := CheckOllamaVersion(context.Background(), srv.URL, 2*time.Second, 0)
	if err != nil {
		t.Fatalf("expected pass, got error: %v", err)
	}
	if msg != "Connected to Ollama" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCheckOllamaVersionUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	msg, err := CheckOllamaVersion(context.Background(), url, time.Second, 0)
	if err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
	if msg != "No Ollama connection" {
		t.Fatalf("expected fixed failure message, got %q", msg)
	}
}

// An unset OLLAMA_BASE_URL leaves a schemeless path; the check fails
// without raising, it never aborts the process.
func TestCheckOllamaVersionMalformedURL(t *testing.T) {
	msg, err := CheckOllamaVersion(context.Background(), "/api/version", time.Second, 0)
	if err == nil {
		t.Fatal("expected error for malformed url")
	}
	if msg != "No Ollama connection" {
		t.Fatalf("expected fixed failure message, got %q", msg)
	}
}
