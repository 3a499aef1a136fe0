package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	Port        int

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int

	JWTSecret       string
	SessionDuration time.Duration

	GeminiAPIKey    string
	GeminiModel     string
	AnalysisTimeout time.Duration

	// Comma-separated page prefixes the session guard redirects on.
	// API prefixes are guarded regardless.
	ProtectedPagePrefixes string

	CORSOrigins string
}

var requiredKeys = []string{
	"JWT_SECRET",
	"GEMINI_API_KEY",
	"DATABASE_DB_PATH",
}

func InitConfig() (Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("SESSION_DURATION", "24h")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("ANALYSIS_TIMEOUT", "60s")
	viper.SetDefault("PROTECTED_PAGE_PREFIXES", "/dashboard,/case")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(viper.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf(
			"missing required environment variables: %s",
			strings.Join(missing, ", "),
		)
	}

	config := Config{
		Environment:           viper.GetString("ENVIRONMENT"),
		Port:                  viper.GetInt("PORT"),
		DatabaseDbPath:        viper.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress:  viper.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:     viper.GetInt("DATABASE_CACHE_PORT"),
		JWTSecret:             viper.GetString("JWT_SECRET"),
		SessionDuration:       viper.GetDuration("SESSION_DURATION"),
		GeminiAPIKey:          viper.GetString("GEMINI_API_KEY"),
		GeminiModel:           viper.GetString("GEMINI_MODEL"),
		AnalysisTimeout:       viper.GetDuration("ANALYSIS_TIMEOUT"),
		ProtectedPagePrefixes: viper.GetString("PROTECTED_PAGE_PREFIXES"),
		CORSOrigins:           viper.GetString("CORS_ORIGINS"),
	}

	if config.SessionDuration <= 0 {
		config.SessionDuration = 24 * time.Hour
	}
	if config.AnalysisTimeout <= 0 {
		config.AnalysisTimeout = 60 * time.Second
	}

	return config, nil
}

// PagePrefixes splits the configured redirect prefixes.
func (c Config) PagePrefixes() []string {
	var prefixes []string
	for _, p := range strings.Split(c.ProtectedPagePrefixes, ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
