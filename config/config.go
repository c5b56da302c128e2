// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret.
	JWTSecret string

	// Server
	Debug      bool
	LogLevel   string
	Port       string
	TLSDomains []string

	// Season is the championship year served by the schedule and standings.
	Season int
	// RescoreConcurrency bounds the number of GPs rescored at once.
	RescoreConcurrency int
	// AdminUsers are usernames granted admin rights at sign-in in addition
	// to users flagged in the database.
	AdminUsers []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win. Invalid
// configuration is fatal.
func Load() *Config {
	cfg, err := load(newViper())
	if err != nil {
		log.Fatal("config: ", err)
	}
	return cfg
}

func load(v *viper.Viper) (*Config, error) {
	// Defaults
	v.SetDefault("DB_USER", "gridpredict")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "gridpredict")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("SEASON", 2025)
	v.SetDefault("RESCORE_CONCURRENCY", 4)
	v.SetDefault("ADMIN_USERS", "")

	cfg := &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBUser:             v.GetString("DB_USER"),
		DBPass:             v.GetString("DB_PASS"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSLMODE"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		Debug:              v.GetBool("DEBUG"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		Port:               v.GetString("PORT"),
		TLSDomains:         splitTrimmed(v.GetString("TLS_DOMAINS")),
		Season:             v.GetInt("SEASON"),
		RescoreConcurrency: v.GetInt("RESCORE_CONCURRENCY"),
		AdminUsers:         splitTrimmed(strings.ToLower(v.GetString("ADMIN_USERS"))),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// IsAdminUser reports whether username is listed in ADMIN_USERS.
func (c *Config) IsAdminUser(username string) bool {
	normalized := strings.ToLower(strings.TrimSpace(username))
	for _, admin := range c.AdminUsers {
		if normalized == admin {
			return true
		}
	}
	return false
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return errors.New("DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.RescoreConcurrency < 1 {
		return fmt.Errorf("RESCORE_CONCURRENCY must be at least 1, got %d", c.RescoreConcurrency)
	}
	if !c.Debug && len(c.TLSDomains) == 0 {
		return errors.New("TLS_DOMAINS must be set when DEBUG is false")
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
