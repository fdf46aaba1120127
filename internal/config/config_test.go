package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate runs the test in an empty directory with no mockmentor env set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{
		EnvConfigPath, "MOCKMENTOR_DB", "MOCKMENTOR_USER", "MOCKMENTOR_CATALOG",
		"MOCKMENTOR_SEED", "MOCKMENTOR_RECENT_WINDOW", "MOCKMENTOR_LOG_LEVEL",
		"MOCKMENTOR_LOG_FILE", "MOCKMENTOR_ADDR", "MOCKMENTOR_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile.UserID != "default_user" {
		t.Errorf("UserID = %q", cfg.Profile.UserID)
	}
	if cfg.Selection.RecentWindow != 2 {
		t.Errorf("RecentWindow = %d, want 2", cfg.Selection.RecentWindow)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "info" || cfg.DB.Path != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
db:
  path: /tmp/mm.db
profile:
  user_id: alex
selection:
  seed: 42
  recent_window: 1
log:
  level: DEBUG
server:
  addr: "127.0.0.1:9000"
  shutdown_timeout: 3s
`)
	t.Setenv(EnvConfigPath, path)
	t.Setenv("MOCKMENTOR_USER", "sam")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile.UserID != "sam" {
		t.Errorf("env should override yaml: UserID = %q", cfg.Profile.UserID)
	}
	if cfg.DB.Path != "/tmp/mm.db" || cfg.Selection.Seed != 42 || cfg.Selection.RecentWindow != 1 {
		t.Errorf("yaml not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want normalized debug", cfg.Log.Level)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "MOCKMENTOR_CATALOG=questions.yaml\n")
	t.Cleanup(func() { os.Unsetenv("MOCKMENTOR_CATALOG") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Path != "questions.yaml" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvConfigPath, filepath.Join(dir, "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Profile:   ProfileConfig{UserID: "u"},
			Selection: SelectionConfig{RecentWindow: 2},
			Log:       LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty user", func(c *Config) { c.Profile.UserID = "  " }, true},
		{"negative window", func(c *Config) { c.Selection.RecentWindow = -1 }, true},
		{"zero window", func(c *Config) { c.Selection.RecentWindow = 0 }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"negative timeout", func(c *Config) { c.Server.ShutdownTimeout = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
