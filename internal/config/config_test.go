package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okarpov/studykeeper/internal/users"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "highschool-pro-prod", c.AppID)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 3, c.RetryAttempts)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, users.SchemeSHA256, c.HashScheme)
	assert.Equal(t, "admin", c.AdminID)
	assert.False(t, c.SetupMode)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		c.ProjectID = "proj-1"
		c.CredentialsFile = "/secrets/sa.json"
		return c
	}

	t.Run("complete config passes", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing project id", func(t *testing.T) {
		c := base()
		c.ProjectID = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing credentials file", func(t *testing.T) {
		c := base()
		c.CredentialsFile = ""
		assert.Error(t, c.Validate())
	})

	t.Run("setup mode needs admin secret", func(t *testing.T) {
		c := base()
		c.SetupMode = true
		assert.Error(t, c.Validate())

		c.AdminSecret = "bootstrap-1"
		assert.NoError(t, c.Validate())
	})

	t.Run("hash scheme must be known", func(t *testing.T) {
		c := base()
		c.HashScheme = "md5"
		assert.Error(t, c.Validate())

		c.HashScheme = users.SchemeBcrypt
		assert.NoError(t, c.Validate())
	})
}
