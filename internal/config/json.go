package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/okarpov/studykeeper/internal/flagx"
	"github.com/okarpov/studykeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be given either as a string like "30s"
// or as integer nanoseconds.
type JsonConfig struct {
	AppID           string         `json:"app_id"`
	ProjectID       string         `json:"project_id"`
	CredentialsFile string         `json:"credentials_file"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	RetryAttempts   int            `json:"retry_attempts"`
	DataDir         string         `json:"data_dir"`
	HashScheme      string         `json:"hash_scheme"`
	SetupMode       bool           `json:"setup_mode"`
	AdminID         string         `json:"admin_id"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Absent flags mean no JSON stage. Read or unmarshal errors panic; config is
// resolved before any remote work starts, so a broken file should stop the
// process immediately.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.AppID != "" {
		cfg.AppID = jc.AppID
	}
	if jc.ProjectID != "" {
		cfg.ProjectID = jc.ProjectID
	}
	if jc.CredentialsFile != "" {
		cfg.CredentialsFile = jc.CredentialsFile
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RetryAttempts > 0 {
		cfg.RetryAttempts = jc.RetryAttempts
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.HashScheme != "" {
		cfg.HashScheme = jc.HashScheme
	}
	if jc.SetupMode {
		cfg.SetupMode = true
	}
	if jc.AdminID != "" {
		cfg.AdminID = jc.AdminID
	}
}
