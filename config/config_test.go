package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
instance:
  url: https://write.example.com
  token: abc123
logging:
  level: debug
  format: json
filter:
  default_expression: 'Views > 0'
  presets:
    drafts: 'Views == 0'
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Instance.URL != "https://write.example.com" {
		t.Errorf("Instance.URL = %q", cfg.Instance.URL)
	}
	if cfg.Instance.Token != "abc123" {
		t.Errorf("Instance.Token = %q", cfg.Instance.Token)
	}
	if cfg.Instance.Timeout != 30 {
		t.Errorf("Instance.Timeout = %d, want default 30", cfg.Instance.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Filter.Presets["drafts"] != "Views == 0" {
		t.Errorf("Filter.Presets[drafts] = %q", cfg.Filter.Presets["drafts"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing instance url",
			mutate:  func(c *Config) { c.Instance.URL = "" },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Instance.Timeout = -1 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Instance: InstanceConfig{
					URL:     "http://localhost:8080",
					Timeout: 30,
				},
				Logging: LoggingConfig{
					Level:  "info",
					Format: "console",
				},
			}
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
instance:
  url: https://write.example.com
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := SaveToken(path, "fresh-token"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after SaveToken error = %v", err)
	}
	if cfg.Instance.Token != "fresh-token" {
		t.Errorf("Instance.Token = %q, want fresh-token", cfg.Instance.Token)
	}
	if cfg.Instance.URL != "https://write.example.com" {
		t.Errorf("Instance.URL = %q, existing settings must survive", cfg.Instance.URL)
	}
}
