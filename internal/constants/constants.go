package constants

import "time"

const (
	ExternalAPITimeout = 15 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

// BinaryScanCap bounds the plain-text fallback pass over unrecognized
// (possibly binary) files to the first 1 MiB.
const BinaryScanCap = 1024 * 1024

const (
	RankHistoryLimit = 50
)
