package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	Port     int
	Database Database
	Log      Log
}

type Database struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

type Log struct {
	Level string
	File  string
}

// Load reads the configuration from the environment. Database settings are
// required; the rest falls back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port: 8080,
		Log: Log{
			Level: os.Getenv("LOG_LEVEL"),
			File:  os.Getenv("LOG_FILE"),
		},
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	required := map[string]*string{
		"DB_HOST":     &cfg.Database.Host,
		"DB_PORT":     &cfg.Database.Port,
		"DB_USERNAME": &cfg.Database.Username,
		"DB_PASSWORD": &cfg.Database.Password,
		"DB_DATABASE": &cfg.Database.Database,
	}
	for name, dest := range required {
		v := os.Getenv(name)
		if v == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
		*dest = v
	}

	return cfg, nil
}

// DSN builds the postgres:// connection string, encoding credentials and the
// database name so special characters survive.
func (d Database) DSN() string {
	userInfo := url.UserPassword(d.Username, d.Password)
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		userInfo.String(),
		d.Host,
		d.Port,
		url.PathEscape(d.Database),
	)
}
