package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// JWTConfig defines issuer/secret pair for session token verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	MongoURI             string
	MongoDatabase        string
	PingCollection       string
	RestaurantCollection string
	ReviewCollection     string
	RatingCollection     string
	Timeout              time.Duration
	Timezone             string
	ServerLog            *log.Logger
	JWTConfigs           []JWTConfig
	JWTAudience          string
	SessionTTL           time.Duration
	AllowedOrigins       []string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})

	// セッション署名鍵。SESSION_JWT_SECRET_PREVIOUS を併記するとローテーション中の
	// 旧トークンも検証できる。新規トークンは先頭の鍵で署名する。
	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("SESSION_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("SESSION_JWT_ISSUER", "phofinder-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("SESSION_JWT_SECRET_PREVIOUS")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("SESSION_JWT_ISSUER", "phofinder-auth"),
			Secret: []byte(secret),
		})
	}

	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secret not configured. Set SESSION_JWT_SECRET.")
	}

	sessionTTL := 180 * 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("SESSION_JWT_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			sessionTTL = parsed
		}
	}

	cfg := Config{
		Addr:                 envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "phofinder"),
		RestaurantCollection: envOrDefault("RESTAURANT_COLLECTION", "restaurants"),
		ReviewCollection:     envOrDefault("REVIEW_COLLECTION", "reviews"),
		RatingCollection:     envOrDefault("RATING_COLLECTION", "ratings"),
		PingCollection:       envOrDefault("PING_COLLECTION", "pings"),
		Timeout:              timeout,
		Timezone:             envOrDefault("TIMEZONE", "America/Los_Angeles"),
		ServerLog:            log.New(os.Stdout, "[phofinder-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:           jwtConfigs,
		JWTAudience:          strings.TrimSpace(os.Getenv("SESSION_JWT_AUDIENCE")),
		SessionTTL:           sessionTTL,
		AllowedOrigins:       allowedOrigins,
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
