// Package config assembles runtime settings for the study terminal.
// Sources are applied in order — defaults, JSON file, command-line flags,
// environment — with later sources taking precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/okarpov/studykeeper/internal/users"
)

// Config holds all process-wide settings.
//
// The remote credential bundle (ProjectID + CredentialsFile) is mandatory:
// without it no remote operation can succeed, so a missing or malformed
// bundle is a fatal startup error, never a runtime one.
type Config struct {
	// AppID namespaces every remote path (artifacts/{AppID}/...).
	AppID string

	// ProjectID and CredentialsFile identify the remote store deployment
	// and its service-account JSON bundle.
	ProjectID       string
	CredentialsFile string

	// RequestTimeout bounds each individual remote attempt.
	RequestTimeout time.Duration

	// RetryAttempts is the total attempt budget per remote call.
	RetryAttempts int

	// DataDir holds the per-subject study content files.
	DataDir string

	// HashScheme names the credential hashing scheme ("sha256" or
	// "bcrypt"). sha256 is wire-compatible with existing records; only
	// fresh deployments should switch.
	HashScheme string

	// SetupMode opens the one-time admin bootstrap gate. Leave off outside
	// initial deployment.
	SetupMode   bool
	AdminID     string
	AdminSecret string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AppID = "highschool-pro-prod"
	c.RequestTimeout = 30 * time.Second
	c.RetryAttempts = 3
	c.DataDir = "data"
	c.HashScheme = users.SchemeSHA256
	c.AdminID = "admin"
	c.SetupMode = false
}

// LoadConfig constructs a Config from defaults, JSON (if present), flags,
// and environment, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

// Validate reports the errors that make startup impossible.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return errors.New("remote project id is required (-p or STUDYKEEPER_PROJECT_ID)")
	}
	if c.CredentialsFile == "" {
		return errors.New("service-account credentials file is required (-k or STUDYKEEPER_CREDENTIALS_FILE)")
	}
	if c.SetupMode && c.AdminSecret == "" {
		return errors.New("setup mode requires an admin bootstrap secret (STUDYKEEPER_ADMIN_SECRET)")
	}
	if c.HashScheme != users.SchemeSHA256 && c.HashScheme != users.SchemeBcrypt {
		return fmt.Errorf("unknown hash scheme %q (want %s or %s)", c.HashScheme, users.SchemeSHA256, users.SchemeBcrypt)
	}
	return nil
}
