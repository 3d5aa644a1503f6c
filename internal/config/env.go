package config

import "os"

// parseEnv overlays cfg with environment variables. Secrets travel this way
// so they stay out of argv and config files.
//
//	STUDYKEEPER_PROJECT_ID        remote project id
//	STUDYKEEPER_CREDENTIALS_FILE  service-account credentials file
//	STUDYKEEPER_ADMIN_SECRET      admin bootstrap secret (setup mode only)
func parseEnv(cfg *Config) {
	if v := os.Getenv("STUDYKEEPER_PROJECT_ID"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("STUDYKEEPER_CREDENTIALS_FILE"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv("STUDYKEEPER_ADMIN_SECRET"); v != "" {
		cfg.AdminSecret = v
	}
}
