package config

import (
	"fmt"
	"strings"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Profile.UserID) == "" {
		return fmt.Errorf("profile.user_id must not be empty")
	}
	if c.Selection.RecentWindow < 0 {
		return fmt.Errorf("selection.recent_window must be >= 0 (got %d)", c.Selection.RecentWindow)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be >= 0 (got %v)", c.Server.ShutdownTimeout)
	}

	level := strings.ToLower(c.Log.Level)
	valid := false
	for _, l := range logLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("log.level must be one of %s (got %q)", strings.Join(logLevels, ", "), c.Log.Level)
	}
	c.Log.Level = level
	return nil
}
