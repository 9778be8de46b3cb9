package config

import (
	"os"
	"strconv"
)

// parseEnv overlays Config fields from environment variables. Unset
// variables leave the current value untouched.
//
// Recognized variables:
//
//	PORT               HTTP port (bound as ":<PORT>")
//	DATABASE           Mongo connection-string template
//	DATABASE_PASSWORD  substituted for <db_PASSWORD>
//	DB_NAME            substituted for <db_NAME>
//	JWT_SECRET         token signing secret
//	EMAIL_HOST, EMAIL_PORT, EMAIL_USERNAME, EMAIL_PASSWORD, EMAIL_FROM
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok {
		config.EndpointAddr = ":" + v
	}
	if v, ok := os.LookupEnv("DATABASE"); ok {
		config.DatabaseTemplate = v
	}
	if v, ok := os.LookupEnv("DATABASE_PASSWORD"); ok {
		config.DatabasePassword = v
	}
	if v, ok := os.LookupEnv("DB_NAME"); ok {
		config.DatabaseName = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("EMAIL_HOST"); ok {
		config.EmailHost = v
	}
	if v, ok := os.LookupEnv("EMAIL_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			config.EmailPort = port
		}
	}
	if v, ok := os.LookupEnv("EMAIL_USERNAME"); ok {
		config.EmailUsername = v
	}
	if v, ok := os.LookupEnv("EMAIL_PASSWORD"); ok {
		config.EmailPassword = v
	}
	if v, ok := os.LookupEnv("EMAIL_FROM"); ok {
		config.EmailFrom = v
	}
}
