package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 30 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Ping timeout for storage backends at startup
const PingTimeout = 5 * time.Second

// Greeting memory
const (
	NameCacheTTL     = time.Hour
	GreetingThrottle = 60 * time.Second
)

// Background job intervals
const GreetingSweepInterval = 10 * time.Minute

// Upper bound for one reply or profile call to LINE
const LineCallTimeout = 10 * time.Second
