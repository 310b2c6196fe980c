package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. FromEnv keeps main lean.
type Server struct {
	Addr          string
	PostgresDSN   string
	RedisURL      string
	KafkaBrokers  string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// SessionTTL bounds how long an in-progress registration may idle before
	// cleanup is allowed to reap it.
	SessionTTL time.Duration

	Underwriting Underwriting
}

// Underwriting carries the decisioning constants. The thresholds and loading
// are demo-grade round numbers, so they live in configuration rather than in
// the engine.
type Underwriting struct {
	// Score bands, ordered. score < AutoApproveBelow → approved clean;
	// score < LoadedApproveBelow → approved with loading; score <
	// ReviewBelow → manual review; score < DocumentsBelow → documents
	// required; anything else → rejected.
	AutoApproveBelow   int
	LoadedApproveBelow int
	ReviewBelow        int
	DocumentsBelow     int

	// LoadingPercent is applied to the base premium on the loaded-approve
	// band (10 = +10%).
	LoadingPercent int64

	// RequiredDocuments is attached to requires_documents decisions.
	RequiredDocuments []string

	RejectionMessage string
}

// DefaultUnderwriting returns the stock decision bands.
func DefaultUnderwriting() Underwriting {
	return Underwriting{
		AutoApproveBelow:   20,
		LoadedApproveBelow: 30,
		ReviewBelow:        50,
		DocumentsBelow:     70,
		LoadingPercent:     10,
		RequiredDocuments:  []string{"Medical Certificate", "Lab Reports"},
		RejectionMessage:   "Application declined based on underwriting assessment",
	}
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:          envOr("COVERGATE_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("COVERGATE_POSTGRES_DSN"),
		RedisURL:      os.Getenv("COVERGATE_REDIS_URL"),
		KafkaBrokers:  os.Getenv("COVERGATE_KAFKA_BROKERS"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envOr("JWT_ISSUER", "covergate"),
		JWTAudience:   envOr("JWT_AUDIENCE", "covergate-api"),
		SessionTTL:    envDurationOr("COVERGATE_SESSION_TTL", 30*24*time.Hour),
		Underwriting:  DefaultUnderwriting(),
	}

	if v, err := strconv.ParseInt(os.Getenv("UNDERWRITING_LOADING_PERCENT"), 10, 64); err == nil && v > 0 {
		cfg.Underwriting.LoadingPercent = v
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
