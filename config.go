package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"staybook/store"
)

type Config struct {
	Port          string
	JWTSecret     string
	Domain        string
	LogLevel      log.Lvl
	DB            store.DBConfig
	Redis         store.RedisConfig
	AWSRegion     string
	AWSBucket     string
	PGPPrivateKey string
	PGPPassphrase string
	LockTTL       time.Duration
}

func checkConfig() {
	requiredConfig := []string{"JWT_SECRET"}

	// Loop over reqired config and check if they are set, and not ""
	for _, v := range requiredConfig {
		if os.Getenv(v) == "" {
			panic("Missing required config: " + v)
		}
	}
}

func loadConfig() Config {
	return Config{
		Port:      getEnvOrDefault("PORT", "1323"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Domain:    getEnvOrDefault("DOMAIN", "localhost"),
		LogLevel:  parseLogLevel(os.Getenv("LOG_LEVEL")),
		DB: store.DBConfig{
			Driver: getEnvOrDefault("DB_DRIVER", "sqlite"),
			Path:   getEnvOrDefault("DB_PATH", "staybook.db"),
			DSN:    os.Getenv("DB_DSN"),
			Debug:  os.Getenv("DB_DEBUG") == "true",
		},
		Redis: store.RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		AWSRegion:     os.Getenv("AWS_REGION"),
		AWSBucket:     os.Getenv("AWS_BUCKET_NAME"),
		PGPPrivateKey: os.Getenv("PGP_PRIVATE_KEY"),
		PGPPassphrase: os.Getenv("PGP_PASSPHRASE"),
		LockTTL:       time.Duration(getEnvAsIntOrDefault("LOCK_TTL", 30)) * time.Second,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warnf("Environment variable %s is not a number, using %d", key, defaultValue)
	}
	return defaultValue
}

func parseLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
