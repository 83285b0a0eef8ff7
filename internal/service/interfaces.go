// Package service defines the interfaces shared between the ledger runtime
// and its storage backends.
package service

import (
	"context"

	"github.com/Veraticus/dual-count/internal/ledger"
)

// StateStore persists opaque blobs under string keys. LoadBlob returns an
// error wrapping common.ErrNotFound when the key has never been written.
type StateStore interface {
	LoadBlob(ctx context.Context, key string) ([]byte, error)
	SaveBlob(ctx context.Context, key string, data []byte) error
	Close() error
}

// Persister is the load/save capability the ledger runtime depends on. Load
// never fails: it falls back to a fresh state. Save failures are logged by
// the implementation and returned for callers that want to report them.
type Persister interface {
	Load(ctx context.Context) ledger.State
	Save(ctx context.Context, revision uint64, state ledger.State) error
}
