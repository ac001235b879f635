package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Server captures process-level configuration so main stays lean. Business
// settings (deadline, cancellation policy) live in the settings store, not
// here.
type Server struct {
	Addr             string        `envconfig:"ADDR" default:":8080"`
	DatabaseURL      string        `envconfig:"DATABASE_URL"`
	RedisURL         string        `envconfig:"REDIS_URL"`
	JWTSigningKey    string        `envconfig:"JWT_SIGNING_KEY" default:"dev-secret-key-change-in-production"`
	JWTIssuer        string        `envconfig:"JWT_ISSUER" default:"messhall"`
	Timezone         string        `envconfig:"TIMEZONE" default:"Local"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	SettingsCacheTTL time.Duration `envconfig:"SETTINGS_CACHE_TTL" default:"30s"`
}

// FromEnv builds a Server config from MESSHALL_-prefixed environment
// variables. Empty DatabaseURL selects the in-memory stores; empty RedisURL
// disables the settings cache.
func FromEnv() (Server, error) {
	var cfg Server
	if err := envconfig.Process("messhall", &cfg); err != nil {
		return Server{}, fmt.Errorf("process env config: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured reference time zone. "Today" for every
// deadline rule is the calendar date in this location.
func (s Server) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
