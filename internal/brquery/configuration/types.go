package configuration

import (
	"time"
)

type SqlServerConfig struct {
	Host     string
	Port     uint16
	Username string
	Password string
	Database string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Connection establishment retry policy, applied at startup only.
	ConnectionAttempts   uint
	ConnectionRetryDelay time.Duration
}

type StatusCacheConfig struct {
	Expiry          time.Duration
	CleanupInterval time.Duration
}

type BRQueryConfiguration struct {
	HttpPort    uint16
	MetricsPort uint16

	// Maximum number of rows a single query may return. Requested limits are
	// clamped to this value, not rejected.
	MaxRowLimit int
	// Limit applied when a request does not specify one.
	DefaultRowLimit int
	// Upper bound on a single database round trip.
	QueryTimeout time.Duration

	// Table holding the business request snapshot and the status reference
	// table it joins against.
	BRTable     string
	StatusTable string

	SqlServer   SqlServerConfig
	StatusCache StatusCacheConfig
}
