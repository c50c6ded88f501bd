// Package kvstore provides the key-value stores that hold persisted task lists.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store is a key-value store holding raw serialized values.
// Set overwrites the value in full.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the underlying resources.
	Close() error
}

// Options selects and configures a driver.
type Options struct {
	Driver string
	Path   string // file driver
	DSN    string // postgres and mysql drivers
}

// Open creates the store named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverFile:
		return NewFileStore(opts.Path)
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverPostgres:
		return OpenPostgres(ctx, opts.DSN)
	case DriverMySQL:
		return OpenMySQL(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}

// ValidDriver reports whether name is a driver Open understands.
func ValidDriver(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DriverFile, DriverMemory, DriverPostgres, DriverMySQL:
		return true
	}
	return false
}
