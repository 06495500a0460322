package settings

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var lock = &sync.Mutex{}
var singleSettingsInstace *settings

type settings struct {
	PORT             string
	JWT_SECRET_KEY   string
	JWT_EXPIRATION   time.Duration
	MONGO_DB         string
	MONGO_CONNECTION string
	NATS_HOST        string
	AWS_BUCKET       string
	AWS_REGION       string
	ELS_HOST         string
	ELS_PASSWORD     string
	ELS_PORT         int
	ELS_USERNAME     string
	COLLEGE_NAME     string
	CLIENT_URL       string
	RATE_LIMIT       int
	NODE_ENV         string
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return parsed
}

func newSettings() *settings {
	expiration, err := time.ParseDuration(getEnv("JWT_EXPIRATION", "24h"))
	if err != nil {
		log.Fatalf("JWT_EXPIRATION must be a duration: %v", err)
	}
	return &settings{
		PORT:           getEnv("PORT", "8080"),
		JWT_SECRET_KEY: getEnv("JWT_SECRET_KEY", os.Getenv("JWT_SECRET")),
		JWT_EXPIRATION: expiration,
		MONGO_DB:       getEnv("MONGO_DB", "coattainment"),
		// CONNECTION is the name used by older deployments
		MONGO_CONNECTION: getEnv("MONGO_CONNECTION", os.Getenv("CONNECTION")),
		NATS_HOST:        os.Getenv("NATS_HOST"),
		ELS_HOST:         os.Getenv("ELS_HOST"),
		ELS_PORT:         getEnvInt("ELS_PORT", 9200),
		ELS_PASSWORD:     os.Getenv("ELS_PASSWORD"),
		ELS_USERNAME:     os.Getenv("ELS_USERNAME"),
		AWS_BUCKET:       os.Getenv("AWS_BUCKET"),
		AWS_REGION:       getEnv("AWS_REGION", "us-east-1"),
		COLLEGE_NAME:     os.Getenv("COLLEGE_NAME"),
		CLIENT_URL:       getEnv("CLIENT_URL", "localhost:3000"),
		RATE_LIMIT:       getEnvInt("RATE_LIMIT", 7),
		NODE_ENV:         os.Getenv("NODE_ENV"),
	}
}

func init() {
	if os.Getenv("NODE_ENV") != "prod" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Invalid .env file: %v", err)
		}
	}
}

func GetSettings() *settings {
	lock.Lock()
	defer lock.Unlock()
	if singleSettingsInstace == nil {
		singleSettingsInstace = newSettings()
	}
	return singleSettingsInstace
}
