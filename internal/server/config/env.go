package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// malformed values leave the current field untouched.
//
// Recognized variables:
//
//	SERVER_ADDR                    HTTP bind address
//	DATABASE_DSN                   PostgreSQL DSN
//	JWT_SECRET_KEY                 access-token signing secret
//	JWT_REFRESH_SECRET_KEY         refresh-token signing secret
//	ACCESS_TOKEN_EXPIRE_MINUTES    access token validity, minutes
//	REFRESH_TOKEN_EXPIRE_MINUTES   refresh token validity, minutes
func parseEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		config.AccessSecretKey = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET_KEY"); v != "" {
		config.RefreshSecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_EXPIRE_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.RefreshTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
}
