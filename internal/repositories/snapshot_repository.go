package repository

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	model "task-board.com/task-board/pkg/models"
)

// DefaultStorageKey is the namespace the board state is written under.
const DefaultStorageKey = "task-storage"

// SnapshotRepository persists the whole board state as one value under a
// single key.
type SnapshotRepository interface {
	// Load reports false when nothing has been stored yet.
	Load(ctx context.Context) (model.Snapshot, bool, error)
	Save(ctx context.Context, snapshot model.Snapshot) error
	Clear(ctx context.Context) error
}

func encodeSnapshot(snapshot model.Snapshot) ([]byte, error) {
	data, err := sonic.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}
