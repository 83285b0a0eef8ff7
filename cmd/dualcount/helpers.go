package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/persist"
	"github.com/Veraticus/dual-count/internal/report"
	"github.com/Veraticus/dual-count/internal/service"
	"github.com/Veraticus/dual-count/internal/storage"
)

// openStore opens the configured backend. The caller closes it.
func (a *app) openStore(ctx context.Context) (service.StateStore, error) {
	store, err := storage.Open(ctx, a.cfg.Storage)
	if err != nil {
		return nil, common.NewUserError("could not open storage", err)
	}
	return store, nil
}

func (a *app) newPersister(store service.StateStore) *persist.Adapter {
	return persist.New(store, persist.WithTimeout(a.cfg.Storage.Timeout))
}

func (a *app) variant() ledger.Variant {
	v, _ := ledger.ParseVariant(a.cfg.UI.Variant)
	return v
}

func (a *app) buildReport(state ledger.State) report.Report {
	return report.Build(state, a.variant(), a.cfg.UI.LeftCurrency, a.cfg.UI.RightCurrency)
}

func (a *app) currency(c ledger.Column) string {
	if c == ledger.Right {
		return a.cfg.UI.RightCurrency
	}
	return a.cfg.UI.LeftCurrency
}

// loadState reads the stored ledger without changing it.
func (a *app) loadState(ctx context.Context) (ledger.State, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return ledger.State{}, err
	}
	defer closeStore(store)

	return a.newPersister(store).Load(ctx), nil
}

// mutate loads the ledger, applies change and saves the result. A failed
// save is reported to the user.
func (a *app) mutate(ctx context.Context, change func(ledger.State) (ledger.State, error)) (ledger.State, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return ledger.State{}, err
	}
	defer closeStore(store)

	return a.mutateStore(ctx, store, change)
}

// mutateStore is mutate on an already open store.
func (a *app) mutateStore(ctx context.Context, store service.StateStore, change func(ledger.State) (ledger.State, error)) (ledger.State, error) {
	p := a.newPersister(store)
	state, err := change(p.Load(ctx))
	if err != nil {
		return ledger.State{}, err
	}

	if err := p.Save(ctx, 1, state); err != nil {
		return state, common.NewUserError("could not save ledger", err)
	}
	return state, nil
}

func closeStore(store service.StateStore) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}

// sqliteStore narrows store to the SQLite backend, which is the only one
// with checkpoints.
func sqliteStore(store service.StateStore) (*storage.SQLiteStorage, error) {
	s, ok := store.(*storage.SQLiteStorage)
	if !ok {
		return nil, common.NewUserError("checkpoints need the sqlite backend", common.ErrUnsupported)
	}
	return s, nil
}

func writeLine(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
