package backend

import (
	"context"
	"time"

	"hisab/internal/store"
)

// Backend is the unified booking store interface every backend implements.
type Backend interface {
	store.TeamLister
	store.TeamWriter
	store.BookingWriter
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function.
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// REST backend
	StoreBaseURL string
	StoreTimeout time.Duration

	// SQLite backend
	SQLiteDBPath string
}

// BackendType represents the type of backend.
type BackendType string

const (
	// RESTBackend talks to the remote booking collection.
	RESTBackend BackendType = "rest"
	// SQLiteBackend keeps the collection in a local database.
	SQLiteBackend BackendType = "sqlite"
	// MemoryBackend is an in-process store for development.
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case RESTBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
