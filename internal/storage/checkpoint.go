package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CheckpointManager snapshots stored blobs so they can be restored later.
type CheckpointManager struct {
	db  *sql.DB
	now func() time.Time
}

// CheckpointInfo describes a stored checkpoint. Data is only populated by Get.
type CheckpointInfo struct {
	CreatedAt   time.Time
	ID          string
	Key         string
	Description string
	Data        []byte
	Size        int64
}

// Checkpoint errors.
var (
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrCheckpointExists   = errors.New("checkpoint already exists")
)

// NewCheckpointManager creates a new checkpoint manager.
func NewCheckpointManager(db *sql.DB) *CheckpointManager {
	return &CheckpointManager{
		db:  db,
		now: time.Now,
	}
}

// Create copies the blob stored under key into a new checkpoint. An empty tag
// is replaced by a timestamped one.
func (cm *CheckpointManager) Create(ctx context.Context, key, tag, description string) (*CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	createdAt := cm.now()
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", createdAt.Format("2006-01-02-150405"))
	}
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	tx, err := cm.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkpoints WHERE id = ?`, tag).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check checkpoint: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointExists, tag)
	}

	data, err := loadBlobTx(ctx, tx, key)
	if err != nil {
		return nil, fmt.Errorf("nothing to checkpoint: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO checkpoints (id, key, description, data, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, tag, key, description, data, createdAt); err != nil {
		return nil, fmt.Errorf("failed to store checkpoint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkpoint: %w", err)
	}

	return &CheckpointInfo{
		ID:          tag,
		Key:         key,
		Description: description,
		CreatedAt:   createdAt,
		Size:        int64(len(data)),
	}, nil
}

// List returns all checkpoints, newest first.
func (cm *CheckpointManager) List(ctx context.Context) ([]CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := cm.db.QueryContext(ctx, `
		SELECT id, key, description, length(data), created_at
		FROM checkpoints
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var checkpoints []CheckpointInfo
	for rows.Next() {
		var info CheckpointInfo
		if err := rows.Scan(&info.ID, &info.Key, &info.Description, &info.Size, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		checkpoints = append(checkpoints, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkpoints: %w", err)
	}

	return checkpoints, nil
}

// Get returns a checkpoint including its data.
func (cm *CheckpointManager) Get(ctx context.Context, tag string) (*CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTag(tag); err != nil {
		return nil, err
	}
	return getCheckpointTx(ctx, cm.db, tag)
}

// Restore writes the checkpointed blob back under its original key.
func (cm *CheckpointManager) Restore(ctx context.Context, tag string) (*CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	tx, err := cm.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	info, err := getCheckpointTx(ctx, tx, tag)
	if err != nil {
		return nil, err
	}

	if err := saveBlobTx(ctx, tx, info.Key, info.Data); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit restore: %w", err)
	}
	return info, nil
}

// Delete removes a checkpoint.
func (cm *CheckpointManager) Delete(ctx context.Context, tag string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTag(tag); err != nil {
		return err
	}

	res, err := cm.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE id = ?`, tag)
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrCheckpointNotFound, tag)
	}
	return nil
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getCheckpointTx(ctx context.Context, q rowQueryer, tag string) (*CheckpointInfo, error) {
	var info CheckpointInfo
	err := q.QueryRowContext(ctx, `
		SELECT id, key, description, data, created_at
		FROM checkpoints
		WHERE id = ?
	`, tag).Scan(&info.ID, &info.Key, &info.Description, &info.Data, &info.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, tag)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	info.Size = int64(len(info.Data))
	return &info, nil
}
