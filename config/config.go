// Package config provides configuration management for the service.
// Values come from environment variables (optionally seeded from a .env file by
// main); struct tags declare names and defaults, and LoadConfig then validates
// the result, reporting every problem at once instead of stopping at the first.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/tierapi-go/apperror"
)

// AppInfo holds descriptive settings.
type AppInfo struct {
	Name string `env:"APP_NAME" envDefault:"Tailored API Response Backend"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret                string `env:"JWT_SECRET,required,notEmpty"`                   // Secret key for signing JWTs
	JWTAlgorithm             string `env:"JWT_ALGORITHM" envDefault:"HS256"`               // HS256, HS384 or HS512
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"1440"` // 24h
	Issuer                   string `env:"JWT_ISSUER" envDefault:"tierapi"`
	BcryptCost               int    `env:"BCRYPT_COST" envDefault:"10"`
}

// AccessTokenDuration is the configured token lifetime.
func (c AuthConfig) AccessTokenDuration() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"` // Port for the HTTP server
}

// CORSConfig lists the cross-origin callers allowed to use the API.
type CORSConfig struct {
	Origins        []string `env:"CORS_ORIGINS" envSeparator:","`
	FrontendOrigin string   `env:"FRONTEND_ORIGIN"`
}

// AllowedOrigins merges CORS_ORIGINS and FRONTEND_ORIGIN, trimmed and
// deduplicated in order. Nothing configured means any origin.
func (c CORSConfig) AllowedOrigins() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range append(append([]string{}, c.Origins...), c.FrontendOrigin) {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// PlansConfig points at an optional replacement tier catalog.
type PlansConfig struct {
	CatalogFile string `env:"PLANS_CATALOG_FILE"`
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	App    AppInfo
	Auth   AuthConfig
	Server ServerConfig
	CORS   CORSConfig
	Plans  PlansConfig
}

var supportedAlgorithms = []string{"HS256", "HS384", "HS512"}

// LoadConfig reads the process environment.
func LoadConfig() (*AppConfig, error) {
	return LoadFromEnvironment(nil)
}

// LoadFromEnvironment reads configuration from environ instead of the process
// environment when environ is non-nil. Tests use it to stay hermetic.
func LoadFromEnvironment(environ map[string]string) (*AppConfig, error) {
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, apperror.NewConfigError("configuration errors", err)
	}

	// `problems` collects every validation failure so the operator sees them all.
	var problems []string

	cfg.Auth.JWTAlgorithm = strings.ToUpper(strings.TrimSpace(cfg.Auth.JWTAlgorithm))
	if !contains(supportedAlgorithms, cfg.Auth.JWTAlgorithm) {
		problems = append(problems, fmt.Sprintf("invalid value for JWT_ALGORITHM: expected one of %s, got '%s'",
			strings.Join(supportedAlgorithms, ", "), cfg.Auth.JWTAlgorithm))
	}
	if cfg.Auth.AccessTokenExpireMinutes <= 0 {
		problems = append(problems, fmt.Sprintf("invalid value for ACCESS_TOKEN_EXPIRE_MINUTES: must be positive, got %d",
			cfg.Auth.AccessTokenExpireMinutes))
	}
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("invalid value for BCRYPT_COST: must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, cfg.Auth.BcryptCost))
	}
	if strings.TrimSpace(cfg.Server.Port) == "" {
		problems = append(problems, "invalid value for PORT: must not be empty")
	}

	if len(problems) > 0 {
		return nil, apperror.NewConfigError("configuration errors", errors.New(strings.Join(problems, "; ")))
	}
	return &cfg, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
