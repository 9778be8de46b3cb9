// Package config handles server configuration: defaults, environment
// overlay, and command-line flags, assembled once at process start.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds runtime settings for the Taskboard server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseTemplate: Mongo connection string carrying the
//     <db_PASSWORD> and <db_NAME> placeholders.
//   - DatabasePassword / DatabaseName: substituted into the template.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the
//     development default in production.
//   - TokenValidityDuration: login token lifetime.
//   - ResetTokenValidityDuration: password-reset token lifetime.
//   - EmailHost / EmailPort / EmailUsername / EmailPassword / EmailFrom:
//     SMTP relay settings for reset mail.
type Config struct {
	EndpointAddr               string
	DatabaseTemplate           string
	DatabasePassword           string
	DatabaseName               string
	SecretKey                  string
	TokenValidityDuration      time.Duration
	ResetTokenValidityDuration time.Duration
	EmailHost                  string
	EmailPort                  int
	EmailUsername              string
	EmailPassword              string
	EmailFrom                  string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5005"
	c.DatabaseTemplate = "mongodb://taskboard:<db_PASSWORD>@localhost:27017/<db_NAME>?authSource=admin"
	c.DatabasePassword = "taskboard"
	c.DatabaseName = "taskboard"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 1 * time.Hour
	c.ResetTokenValidityDuration = 1 * time.Hour
	c.EmailHost = "localhost"
	c.EmailPort = 1025
	c.EmailUsername = ""
	c.EmailPassword = ""
	c.EmailFrom = "Taskboard <noreply@taskboard.local>"
}

const (
	passwordPlaceholder = "<db_PASSWORD>"
	namePlaceholder     = "<db_NAME>"
)

// ErrBadDatabaseTemplate is returned when the connection-string template is
// missing one of its placeholders.
var ErrBadDatabaseTemplate = errors.New(
	"DATABASE connection string format is incorrect: it must include the <db_PASSWORD> and <db_NAME> placeholders")

// MongoURI assembles the connection string by substituting the password and
// database name into the template.
func (c *Config) MongoURI() (string, error) {
	if !strings.Contains(c.DatabaseTemplate, passwordPlaceholder) ||
		!strings.Contains(c.DatabaseTemplate, namePlaceholder) {
		return "", ErrBadDatabaseTemplate
	}
	uri := strings.ReplaceAll(c.DatabaseTemplate, passwordPlaceholder, c.DatabasePassword)
	uri = strings.ReplaceAll(uri, namePlaceholder, c.DatabaseName)
	return uri, nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
