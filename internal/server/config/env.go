package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv populates Config fields from environment variables, first loading
// an optional .env file from the working directory. A missing .env file is
// not an error; variables already set in the process environment win over
// the file (godotenv does not overwrite).
//
// Recognized variables:
//
//	ADDRESS                   HTTP bind address (e.g., ":3000")
//	DATABASE_DSN              PostgreSQL DSN
//	SECRET_KEY                HMAC secret shared with the identity provider
//	PRESIGN_VALIDITY          presigned URL lifetime (Go duration, e.g., "15m")
//	S3_ROOT_USER              S3 root user
//	S3_ROOT_PASSWORD          S3 root password
//	S3_BUCKET                 S3 bucket name
//	S3_REGION                 S3 region
//	S3_BASE_ENDPOINT          S3 base endpoint
//
// Unset variables leave the corresponding Config field untouched. An invalid
// PRESIGN_VALIDITY value panics, matching the behaviour of the other parsers.
func parseEnv(config *Config) {

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("PRESIGN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.PresignValidityDuration = d
	}
	if v, ok := os.LookupEnv("S3_ROOT_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
}
