package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"certledger/pkg/domain"
)

// Config captures everything cmd/server needs to wire the registry. Values
// come from the environment so main stays lean; development defaults keep a
// bare `go run ./cmd/server` working with in-memory state.
type Config struct {
	Addr string

	// AdminAddress is the registry creator: seeded as Admin and Institution
	// at bootstrap.
	AdminAddress domain.Address

	JWTSigningKey string
	TokenIssuer   string
	TokenTTL      time.Duration

	// Operators maps caller addresses to bcrypt hashes of their credentials
	// for the token endpoint. Parsed from "addr=hash,addr=hash".
	Operators map[domain.Address]string

	// PostgresURL selects the pgx-backed store; empty keeps state in memory.
	PostgresURL string

	// RedisURL enables the certificate read cache; empty disables it.
	RedisURL      string
	CacheTTL      time.Duration
	EventBuffer   int
	KafkaBrokers  []string
	EventTopic    string
	ShutdownGrace time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:          getenv("CERTLEDGER_ADDR", ":8080"),
		AdminAddress:  domain.Address(getenv("CERTLEDGER_ADMIN_ADDRESS", "dev-admin")),
		JWTSigningKey: getenv("CERTLEDGER_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenIssuer:   getenv("CERTLEDGER_TOKEN_ISSUER", "certledger"),
		TokenTTL:      getduration("CERTLEDGER_TOKEN_TTL", time.Hour),
		Operators:     parseOperators(os.Getenv("CERTLEDGER_OPERATORS")),
		PostgresURL:   os.Getenv("CERTLEDGER_POSTGRES_URL"),
		RedisURL:      os.Getenv("CERTLEDGER_REDIS_URL"),
		CacheTTL:      getduration("CERTLEDGER_CACHE_TTL", 5*time.Minute),
		EventBuffer:   getint("CERTLEDGER_EVENT_BUFFER", 256),
		EventTopic:    getenv("CERTLEDGER_EVENT_TOPIC", "certledger.registry.events"),
		ShutdownGrace: getduration("CERTLEDGER_SHUTDOWN_GRACE", 10*time.Second),
	}
	if brokers := os.Getenv("CERTLEDGER_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

// parseOperators parses "address=bcrypt-hash" pairs separated by commas.
// Malformed pairs are skipped rather than failing boot.
func parseOperators(raw string) map[domain.Address]string {
	operators := make(map[domain.Address]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		addr, hash, ok := strings.Cut(pair, "=")
		if !ok || addr == "" || hash == "" {
			continue
		}
		operators[domain.Address(addr)] = hash
	}
	return operators
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
