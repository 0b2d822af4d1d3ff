package history

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by a Store when the key holds no blob
	ErrNotFound = errors.New("history: key not found")

	// ErrUnknownBackend is returned by Open for an unsupported backend name
	ErrUnknownBackend = errors.New("history: unknown backend")
)

// Store keeps opaque blobs under string keys. The recorder always reads and
// writes the whole log as one blob.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
	Close() error
}

const (
	BackendBitcask = "bitcask"
	BackendFile    = "file"
	BackendMemory  = "memory"
)

// Open creates the store for backend rooted at path
func Open(backend, path string, logger *zap.Logger) (Store, error) {
	switch backend {
	case BackendBitcask, "":
		return OpenBitcaskStore(path, logger)
	case BackendFile:
		return NewFileStore(path, logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}
