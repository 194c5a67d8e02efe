package storage

import (
	"context"
)

// Backend is a storage engine able to hand out tables and transactions.
type Backend interface {
	Tables() Reader
	Begin(ctx context.Context) (Tx, Reader, error)
	Close() error
}

// Storage is the entry point to persisted data. Reads go through the
// embedded Reader; mutations that must be atomic go through Write.
type Storage struct {
	*Reader
	backend Backend
}

func New(backend Backend) *Storage {
	tables := backend.Tables()
	return &Storage{
		Reader:  &tables,
		backend: backend,
	}
}

// Write opens a transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, tables, err := s.backend.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx, tables), nil
}

func (s *Storage) Close() error {
	return s.backend.Close()
}
