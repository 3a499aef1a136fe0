package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_DB_PATH", ":memory:")
}

func TestInitConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, 24*time.Hour, config.SessionDuration)
	assert.Equal(t, 60*time.Second, config.AnalysisTimeout)
	assert.Equal(t, "test-secret", config.JWTSecret)
	assert.Equal(t, []string{"/dashboard", "/case"}, config.PagePrefixes())
}

func TestInitConfig_MissingRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_DB_PATH", ":memory:")

	_, err := InitConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestPagePrefixes_TrimsAndSkipsEmpty(t *testing.T) {
	config := Config{ProtectedPagePrefixes: " /dashboard , ,/case "}
	assert.Equal(t, []string{"/dashboard", "/case"}, config.PagePrefixes())
}
