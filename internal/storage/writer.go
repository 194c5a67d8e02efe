package storage

import (
	"context"
)

// Tx is a backend transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes the tables bound to a single backend transaction.
type Writer struct {
	tx Tx
	Reader
}

func NewWriter(tx Tx, tables Reader) *Writer {
	return &Writer{
		tx:     tx,
		Reader: tables,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
