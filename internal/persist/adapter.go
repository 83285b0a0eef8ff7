// Package persist bridges the pure ledger state to a blob store.
package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/service"
)

// DefaultTimeout bounds a single load or save.
const DefaultTimeout = 5 * time.Second

// Adapter implements service.Persister on top of a service.StateStore.
type Adapter struct {
	store       service.StateStore
	key         string
	timeout     time.Duration
	mu          sync.Mutex
	lastWritten uint64
	wroteAny    bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// New creates an adapter writing under ledger.StorageKey.
func New(store service.StateStore, opts ...Option) *Adapter {
	a := &Adapter{
		store:   store,
		key:     ledger.StorageKey,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load returns the stored state, or ledger.New() when nothing usable is
// stored.
func (a *Adapter) Load(ctx context.Context) ledger.State {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	data, err := a.store.LoadBlob(ctx, a.key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.LogDebug("No stored state, starting fresh", common.Fields{"key": a.key})
		} else {
			common.LogWarn(err, "Failed to load state, starting fresh", common.Fields{"key": a.key})
		}
		return ledger.New()
	}

	state, err := ledger.Unmarshal(data)
	if err != nil {
		common.LogWarn(err, "Stored state is unreadable, starting fresh", common.Fields{
			"key":  a.key,
			"size": len(data),
		})
		return ledger.New()
	}

	common.LogDebug("Loaded state", common.Fields{
		"key":     a.key,
		"entries": state.EntryCount(),
	})
	return state
}

// Save writes state if revision is newer than the last written one. Stale
// revisions are dropped silently. Failures are logged and returned.
func (a *Adapter) Save(ctx context.Context, revision uint64, state ledger.State) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.wroteAny && revision <= a.lastWritten {
		common.LogDebug("Dropping stale save", common.Fields{
			"revision": revision,
			"last":     a.lastWritten,
		})
		return nil
	}

	data, err := ledger.Marshal(state)
	if err != nil {
		common.LogError(err, "Failed to encode state", common.Fields{"revision": revision})
		return fmt.Errorf("failed to encode state: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.store.SaveBlob(ctx, a.key, data); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", common.ErrStorageTimeout, err)
		}
		common.LogError(err, "Failed to save state", common.Fields{
			"key":      a.key,
			"revision": revision,
		})
		return fmt.Errorf("failed to save state: %w", err)
	}

	a.lastWritten = revision
	a.wroteAny = true
	return nil
}

// Revision returns the revision of the last successful save.
func (a *Adapter) Revision() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastWritten
}
