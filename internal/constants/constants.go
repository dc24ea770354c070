package constants

import "time"

const (
	DefaultSnapshotTTL = 15 * time.Minute
	DefaultFetchLimit  = 8
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	AssistantTimeout   = 45 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MaxQuestionLength = 2000
	MaxSandboxes      = 1000
)
