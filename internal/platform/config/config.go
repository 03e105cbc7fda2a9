package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	DatabaseURL     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Defaults applied when the environment does not override them.
var (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("UDCF_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	environment := os.Getenv("UDCF_ENV")
	if environment == "" {
		environment = "development"
	}

	requestTimeout := DefaultRequestTimeout
	if raw := os.Getenv("UDCF_REQUEST_TIMEOUT"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			requestTimeout = duration
		}
	}

	shutdownTimeout := DefaultShutdownTimeout
	if raw := os.Getenv("UDCF_SHUTDOWN_TIMEOUT"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			shutdownTimeout = duration
		}
	}

	return Server{
		Addr:            addr,
		Environment:     environment,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
	}
}
