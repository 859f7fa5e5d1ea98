// Package config provides the Pulse configuration loader.
// Config is loaded by merging pulse.yaml → ~/.pulse/config.yaml → PULSE_* env vars.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/pkg/netutil"
)

// Defaults contains factory-default values applied before any config file is loaded.
var Defaults = map[string]any{
	"suite.name":    "smoke",
	"log.level":     "info",
	"log.format":    "text",
	"check.timeout": 5 * time.Second,
}

// DefaultHealthURL is probed by the built-in suite when no pulse.yaml exists.
// Port 4000 is where the AI service plugin host listens locally.
const DefaultHealthURL = "http://localhost:4000/api/plugins/rag/health"

// ─────────────────────────────────────────────────────────────────────────────
// Config types
// ─────────────────────────────────────────────────────────────────────────────

// Config is the fully-decoded suite configuration.
type Config struct {
	Version string       `mapstructure:"version"`
	Suite   v1.SuiteSpec `mapstructure:"suite"`
	Log     LogConfig    `mapstructure:"log"`
	Check   CheckConfig  `mapstructure:"check"`
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level  string `mapstructure:"level"` // debug | info | warn | error
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // json | text
}

// CheckConfig holds suite-wide check defaults.
type CheckConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Loader
// ─────────────────────────────────────────────────────────────────────────────

// Load discovers and loads the configuration, walking up directories to find
// pulse.yaml, then merging it with the global config and environment variables.
// When no config file is found, the built-in default suite is returned.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	// Apply defaults
	for k, val := range Defaults {
		v.SetDefault(k, val)
	}

	// Environment variable binding: PULSE_LOG_LEVEL → log.level
	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load global config (~/.pulse/config.yaml) if it exists
	globalCfg := filepath.Join(pulseHome(), "config.yaml")
	if _, err := os.Stat(globalCfg); err == nil {
		v.SetConfigFile(globalCfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read global config: %w", err)
		}
	}

	// Load suite config
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		path, err := discoverSuiteConfig()
		if err == nil {
			v.SetConfigFile(path)
		}
	}

	// A config file that exists but does not parse is an error whether it
	// was named explicitly or discovered: silently running the built-in
	// suite instead would probe the wrong targets.
	if v.ConfigFileUsed() != "" {
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read suite config %q: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Suite.Checks) == 0 {
		cfg.Suite.Checks = DefaultSuite().Checks
	}

	// Resolve env variable placeholders in string values.
	// This is where ${OLLAMA_BASE_URL} in check URLs is honored.
	expandEnvInConfig(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// DefaultSuite returns the built-in suite mirroring the original service
// smoke script: an AI service health probe, an Ollama version probe, and
// the two placeholder pipeline checks.
func DefaultSuite() v1.SuiteSpec {
	return v1.SuiteSpec{
		Name: "smoke",
		Checks: []v1.CheckSpec{
			{
				Name: "ai-health",
				Kind: v1.KindHTTP,
				URL:  DefaultHealthURL,
			},
			{
				Name: "ollama-version",
				Kind: v1.KindOllamaVersion,
				URL:  "${OLLAMA_BASE_URL}/api/version",
			},
			{
				Name:    "embeddings",
				Kind:    v1.KindStatic,
				Message: "Embeddings generated successfully",
			},
			{
				Name:    "chat",
				Kind:    v1.KindStatic,
				Message: "Chat generated successfully",
			},
		},
	}
}

// CheckByName returns the CheckSpec with the given name, or nil.
func (c *Config) CheckByName(name string) *v1.CheckSpec {
	for i := range c.Suite.Checks {
		if c.Suite.Checks[i].Name == name {
			return &c.Suite.Checks[i]
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

// discoverSuiteConfig walks up from the CWD looking for pulse.yaml.
func discoverSuiteConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "pulse.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("pulse.yaml not found")
}

// expandEnvInConfig resolves ${VAR} placeholders in check string fields.
// An unset variable expands to the empty string; the resulting malformed
// URL fails at probe time, never at load time.
func expandEnvInConfig(cfg *Config) {
	for i := range cfg.Suite.Checks {
		chk := &cfg.Suite.Checks[i]
		chk.URL = os.ExpandEnv(chk.URL)
		chk.Host = os.ExpandEnv(chk.Host)
		chk.Container = os.ExpandEnv(chk.Container)
	}
}

// validate performs semantic validation on the loaded config.
func validate(cfg *Config) error {
	seen := map[string]bool{}
	for _, chk := range cfg.Suite.Checks {
		if chk.Name == "" {
			return fmt.Errorf("check with empty name is not allowed")
		}
		if !netutil.IsValidCheckName(chk.Name) {
			return fmt.Errorf("check %q: name must be a lowercase DNS label", chk.Name)
		}
		if seen[chk.Name] {
			return fmt.Errorf("duplicate check name: %q", chk.Name)
		}
		seen[chk.Name] = true

		switch chk.Kind {
		case v1.KindHTTP, v1.KindOllamaVersion:
			if chk.URL == "" {
				return fmt.Errorf("check %q: url is required", chk.Name)
			}
		case v1.KindTCP:
			if chk.Port == 0 {
				return fmt.Errorf("check %q: port is required", chk.Name)
			}
		case v1.KindCmd:
			if chk.Command == "" {
				return fmt.Errorf("check %q: command is required", chk.Name)
			}
		case v1.KindContainer:
			if chk.Container == "" {
				return fmt.Errorf("check %q: container is required", chk.Name)
			}
		case v1.KindStatic:
			if chk.Message == "" {
				return fmt.Errorf("check %q: message is required", chk.Name)
			}
		default:
			return fmt.Errorf("check %q: unknown kind %q", chk.Name, chk.Kind)
		}
	}
	return nil
}

// PulseHome returns the Pulse home directory (~/.pulse).
func PulseHome() string {
	return pulseHome()
}

func pulseHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pulse"
	}
	return filepath.Join(home, ".pulse")
}

// DefaultConfigTemplate is the content written by `pulse init`.
const DefaultConfigTemplate = `# pulse.yaml — Smoke suite manifest
version: "1"

log:
  level: info
  format: text

suite:
  name: smoke
  checks:
    - name: ai-health
      kind: http
      url: http://localhost:4000/api/plugins/rag/health
      # expect_status: 200   # uncomment to require an exact status code

    - name: ollama-version
      kind: ollama-version
      url: ${OLLAMA_BASE_URL}/api/version

    # - name: rag-container
    #   kind: container
    #   container: rag-service

    # - name: redis-port
    #   kind: tcp
    #   host: localhost
    #   port: 6379

    - name: embeddings
      kind: static
      message: Embeddings generated successfully

    - name: chat
      kind: static
      message: Chat generated successfully
`
