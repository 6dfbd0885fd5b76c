package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv loads .env from the working directory if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using system envs")
	}
}

func GetEnv(key string, fallback string) string {
	if value, exist := os.LookupEnv(key); exist {
		return value
	}
	return fallback
}

// GetBool parses key as a boolean, returning fallback when unset or invalid.
func GetBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}
