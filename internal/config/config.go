// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"mydatabase"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Port          int    `env:"PORT" envDefault:"8000"`
	Env           string `env:"APP_ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// FrontendOrigin is where GET / redirects to; the SPA is served
	// separately in development.
	FrontendOrigin string `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:5173"`

	// OIDC client settings. The endpoints are fixed URLs rather than
	// discovered from provider metadata, matching the dex setup the
	// service runs against.
	OIDCClientName   string `env:"OIDC_CLIENT_NAME" envDefault:"newsroom"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID,required"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET,required"`
	OIDCIssuer       string `env:"OIDC_ISSUER" envDefault:"http://dex:5556"`
	OIDCAuthURL      string `env:"OIDC_AUTH_URL" envDefault:"http://localhost:5556/auth"`
	OIDCTokenURL     string `env:"OIDC_TOKEN_URL" envDefault:"http://dex:5556/token"`
	OIDCJWKSURL      string `env:"OIDC_JWKS_URL" envDefault:"http://dex:5556/keys"`
	OIDCRedirectURL  string `env:"OIDC_REDIRECT_URL" envDefault:"http://localhost:8000/authorize"`

	// News wire (article search API) settings.
	NewsAPIKey     string `env:"NYT_API_KEY"`
	NewsAPIBaseURL string `env:"NYT_API_URL" envDefault:"https://api.nytimes.com/svc/search/v2/articlesearch.json"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ListenAddr returns the address the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}
	return cfg, nil
}
