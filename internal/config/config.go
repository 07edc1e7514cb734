package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string // ex: "8080"
	DatabaseURL string // Postgres DSN, required
	JWTSecret   string // HS256 signing secret, required

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	RedisAddr     string        // optional; empty disables the stats cache
	RedisPassword string        //
	RedisDB       int           //
	StatsCacheTTL time.Duration // how long /admin/stats stays cached

	ExpirySweep time.Duration // cadence of the active->expired sweep

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
}

func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: requireEnv("DATABASE_URL"),
		JWTSecret:   requireEnv("JWT_SECRET"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		PrettyLog: mustBool("PRETTY_LOG", false),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),
		StatsCacheTTL: mustDuration("STATS_CACHE_TTL", 30*time.Second),

		ExpirySweep: mustDuration("EXPIRY_SWEEP_INTERVAL", time.Minute),

		SendGridAPIKey:    getenv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getenv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getenv("SENDGRID_FROM_NAME", "ParkHub"),
		TwilioAccountSID:  getenv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getenv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:  getenv("TWILIO_FROM_NUMBER", ""),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s not set", key)
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func mustBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("invalid bool for %s: %q", key, v)
	}
	return b
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
