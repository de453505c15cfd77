package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// Quiet hours and quota days are computed in this timezone.
	Timezone string

	SmsDailyQuota int
	SmsMaxRetries int

	// SMS provider settings (HostPinnacle-style form API).
	SmsBaseURL  string
	SmsAPIKey   string
	SmsUserID   string
	SmsPassword string
	SmsSenderID string

	// Push provider settings.
	PushBaseURL   string
	PushServerKey string

	IdempotencyCacheSize int
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("Notification: No .env file found, relying on system env vars")
	}
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8013"),
		RedisAddr: getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		Timezone: getEnv("NOTIFY_TZ", "Asia/Kolkata"),

		SmsDailyQuota: getEnvInt("SMS_DAILY_QUOTA", 20),
		SmsMaxRetries: getEnvInt("SMS_MAX_RETRIES", 3),

		SmsBaseURL:  getEnv("SMS_BASE_URL", ""),
		SmsAPIKey:   getEnv("SMS_API_KEY", ""),
		SmsUserID:   getEnv("SMS_USER_ID", ""),
		SmsPassword: getEnv("SMS_PASSWORD", ""),
		SmsSenderID: getEnv("SMS_SENDER_ID", "CROPFRESH"),

		PushBaseURL:   getEnv("PUSH_BASE_URL", ""),
		PushServerKey: getEnv("PUSH_SERVER_KEY", ""),

		IdempotencyCacheSize: getEnvInt("IDEMPOTENCY_CACHE_SIZE", 4096),
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[CONFIG] invalid NOTIFY_TZ %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
