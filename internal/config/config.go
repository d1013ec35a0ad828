package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort          string
	DbHost           string
	DbPort           string
	DbUser           string
	DbPassword       string
	DbName           string
	DbParams         string
	APIKey           string
	CorsAllowOrigins []string
	TrustedProxies   []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:          getEnv("APP_PORT", "8080"),
		DbHost:           getEnv("MYSQL_HOST", "db"),
		DbPort:           getEnv("MYSQL_PORT", "3306"),
		DbUser:           getEnv("MYSQL_USER", "pomodoro"),
		DbPassword:       getEnv("MYSQL_PASSWORD", "pomodoro"),
		DbName:           getEnv("MYSQL_DATABASE", "pomodoro"),
		DbParams:         getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		APIKey:           os.Getenv("API_KEY"),
		CorsAllowOrigins: splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
		TrustedProxies:   splitList(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		values = append(values, item)
	}

	if len(values) == 0 {
		return nil
	}

	return values
}
