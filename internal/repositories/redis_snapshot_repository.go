package repository

import (
	"context"

	"github.com/redis/rueidis"

	model "task-board.com/task-board/pkg/models"
)

type RedisSnapshotRepository struct {
	client rueidis.Client
	key    string
}

func NewRedisSnapshotRepository(client rueidis.Client, key string) *RedisSnapshotRepository {
	if key == "" {
		key = DefaultStorageKey
	}
	return &RedisSnapshotRepository{client: client, key: key}
}

func (r *RedisSnapshotRepository) Load(ctx context.Context) (model.Snapshot, bool, error) {
	cmd := r.client.B().Get().Key(r.key).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return model.Snapshot{}, false, nil
		}
		return model.Snapshot{}, false, err
	}

	snapshot, err := decodeSnapshot(data)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (r *RedisSnapshotRepository) Save(ctx context.Context, snapshot model.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	cmd := r.client.B().Set().Key(r.key).Value(rueidis.BinaryString(data)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisSnapshotRepository) Clear(ctx context.Context) error {
	cmd := r.client.B().Del().Key(r.key).Build()
	return r.client.Do(ctx, cmd).Error()
}
