package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.mills.io/bitcask/v2"
	"go.uber.org/zap"
)

// maxBlobSize bounds the whole history blob, the default value limit is too small
const maxBlobSize = 16 << 20

// BitcaskStore keeps blobs in an embedded bitcask database
type BitcaskStore struct {
	be     *bitcask.Bitcask
	path   string
	logger *zap.Logger
}

// OpenBitcaskStore opens (or creates) the database under dir
func OpenBitcaskStore(dir string, logger *zap.Logger) (*BitcaskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, "bitcask.db")
	be, err := bitcask.Open(path, bitcask.WithMaxValueSize(maxBlobSize))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	logger.Debug("History database opened", zap.String("path", path))

	return &BitcaskStore{be: be, path: path, logger: logger}, nil
}

func (s *BitcaskStore) Get(key string) ([]byte, error) {
	data, err := s.be.Get(bitcask.Key(key))
	if err != nil {
		if errors.Is(err, bitcask.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *BitcaskStore) Put(key string, data []byte) error {
	if err := s.be.Put(bitcask.Key(key), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *BitcaskStore) Delete(key string) error {
	if !s.be.Has(bitcask.Key(key)) {
		return nil
	}
	if err := s.be.Delete(bitcask.Key(key)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close compacts the database and closes it
func (s *BitcaskStore) Close() error {
	if err := s.be.Merge(); err != nil {
		s.logger.Warn("History database merge failed", zap.Error(err))
	}
	if err := s.be.Close(); err != nil {
		return fmt.Errorf("failed to close history database: %w", err)
	}
	return nil
}
