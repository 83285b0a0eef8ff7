package ofx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/service"
)

// ImportedKey is the storage key holding the statement ids already added to
// the ledger.
const ImportedKey = "dualcount::ofx-imported"

// LoadImported returns the set of statement ids imported by earlier runs.
// Nothing stored yet yields an empty set.
func LoadImported(ctx context.Context, store service.StateStore) (map[string]bool, error) {
	seen := make(map[string]bool)

	data, err := store.LoadBlob(ctx, ImportedKey)
	if errors.Is(err, common.ErrNotFound) {
		return seen, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load imported ids: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode imported ids: %w", err)
	}
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

// SaveImported replaces the stored id set with seen.
func SaveImported(ctx context.Context, store service.StateStore, seen map[string]bool) error {
	ids := make([]string, 0, len(seen))
	for id, ok := range seen {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode imported ids: %w", err)
	}
	if err := store.SaveBlob(ctx, ImportedKey, data); err != nil {
		return fmt.Errorf("failed to save imported ids: %w", err)
	}
	return nil
}
