package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	v1 "github.com/f9-o/pulse/api/v1"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultSuite(t *testing.T) {
	// No pulse.yaml anywhere near the test CWD: the built-in suite applies.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := len(cfg.Suite.Checks); got != 4 {
		t.Fatalf("expected 4 default checks, got %d", got)
	}
	if cfg.Suite.Checks[0].Name != "ai-health" || cfg.Suite.Checks[0].URL != DefaultHealthURL {
		t.Fatalf("unexpected first check: %+v", cfg.Suite.Checks[0])
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Log.Level)
	}
}

// With OLLAMA_BASE_URL unset the default version check degrades to a
// path-only URL. Load must not reject it; the probe fails at run time.
func TestLoadDefaultSuiteWithoutOllamaEnv(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	chk := cfg.CheckByName("ollama-version")
	if chk == nil {
		t.Fatal("ollama-version check missing from default suite")
	}
	if chk.URL != "/api/version" {
		t.Fatalf("expected bare path url, got %q", chk.URL)
	}
}

func TestLoadExpandsEnvInURLs(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://127.0.0.1:11434")

	path := writeConfig(t, `
suite:
  name: ai
  checks:
    - name: ollama-version
      kind: ollama-version
      url: ${OLLAMA_BASE_URL}/api/version
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	chk := cfg.CheckByName("ollama-version")
	if chk == nil {
		t.Fatal("check missing")
	}
	if chk.URL != "http://127.0.0.1:11434/api/version" {
		t.Fatalf("env not expanded: %q", chk.URL)
	}
}

func TestLoadParsesFullSuite(t *testing.T) {
	path := writeConfig(t, `
version: "1"
log:
  level: debug
suite:
  name: full
  checks:
    - name: web
      kind: http
      url: http://localhost:8080/health
      expect_status: 200
      timeout: 2s
    - name: redis
      kind: tcp
      host: localhost
      port: 6379
    - name: rag
      kind: container
      container: rag-service
      port: 4000
    - name: disk
      kind: cmd
      command: df -h
    - name: chat
      kind: static
      message: Chat generated successfully
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Suite.Name != "full" {
		t.Fatalf("suite name: %q", cfg.Suite.Name)
	}
	if len(cfg.Suite.Checks) != 5 {
		t.Fatalf("expected 5 checks, got %d", len(cfg.Suite.Checks))
	}

	web := cfg.CheckByName("web")
	if web.Kind != v1.KindHTTP || web.ExpectStatus != 200 || web.Timeout.Seconds() != 2 {
		t.Fatalf("web check decoded wrong: %+v", web)
	}
	if rag := cfg.CheckByName("rag"); rag.Container != "rag-service" || rag.Port != 4000 {
		t.Fatalf("rag check decoded wrong: %+v", rag)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level: %q", cfg.Log.Level)
	}
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	path := writeConfig(t, `
suite:
  checks:
    - name: a
      kind: static
      message: one
    - name: a
      kind: static
      message: two
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate check name") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestLoadRejectsInvalidName(t *testing.T) {
	path := writeConfig(t, `
suite:
  checks:
    - name: Bad Name
      kind: static
      message: nope
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "lowercase DNS label") {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestLoadBrokenExplicitConfig(t *testing.T) {
	path := writeConfig(t, "suite:\n  checks: [\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "read suite config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

// A pulse.yaml found by walking up from the CWD must also fail loudly when
// it does not parse, instead of silently falling back to the default suite.
func TestLoadBrokenDiscoveredConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pulse.yaml"), []byte("suite:\n  checks: [\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(old)

	_, err = Load("")
	if err == nil || !strings.Contains(err.Error(), "read suite config") {
		t.Fatalf("expected parse error for discovered config, got %v", err)
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	path := writeConfig(t, `
suite:
  checks:
    - name: a
      kind: quantum
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestLoadRejectsMissingTarget(t *testing.T) {
	path := writeConfig(t, `
suite:
  checks:
    - name: a
      kind: tcp
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "port is required") {
		t.Fatalf("expected port error, got %v", err)
	}
}

func TestDefaultSuiteShape(t *testing.T) {
	s := DefaultSuite()
	want := []string{"ai-health", "ollama-version", "embeddings", "chat"}
	if len(s.Checks) != len(want) {
		t.Fatalf("expected %d checks, got %d", len(want), len(s.Checks))
	}
	for i, name := range want {
		if s.Checks[i].Name != name {
			t.Fatalf("check %d: expected %q, got %q", i, name, s.Checks[i].Name)
		}
	}
	// The two pipeline placeholders perform no I/O.
	for _, name := range []string{"embeddings", "chat"} {
		for _, chk := range s.Checks {
			if chk.Name == name && chk.Kind != v1.KindStatic {
				t.Fatalf("%s must be a static check, got %s", name, chk.Kind)
			}
		}
	}
}
