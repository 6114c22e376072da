package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "task-board.com/task-board/pkg/models"
)

type SQLiteSnapshotRepository struct {
	db  *gorm.DB
	key string
}

func NewSQLiteSnapshotRepository(db *gorm.DB, key string) *SQLiteSnapshotRepository {
	if key == "" {
		key = DefaultStorageKey
	}
	return &SQLiteSnapshotRepository{db: db, key: key}
}

func (r *SQLiteSnapshotRepository) Load(ctx context.Context) (model.Snapshot, bool, error) {
	var entry model.KVEntry
	result := r.db.WithContext(ctx).Where("namespace = ?", r.key).Limit(1).Find(&entry)
	if result.Error != nil {
		return model.Snapshot{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return model.Snapshot{}, false, nil
	}

	snapshot, err := decodeSnapshot([]byte(entry.Value))
	if err != nil {
		return model.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (r *SQLiteSnapshotRepository) Save(ctx context.Context, snapshot model.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	entry := model.KVEntry{
		Namespace: r.key,
		Value:     string(data),
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *SQLiteSnapshotRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&model.KVEntry{}, "namespace = ?", r.key).Error
}
