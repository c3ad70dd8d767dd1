package config

import "os"

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// DatabaseURL selects the store backend: a PostgreSQL DSN when set,
	// the in-memory store when empty.
	DatabaseURL string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MEMBERLIST_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}
