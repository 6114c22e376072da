package config

import (
	log "github.com/sirupsen/logrus"

	repository "task-board.com/task-board/internal/repositories"
)

// NewSnapshotRepository opens the storage backend selected by the config.
// The returned func releases its connections.
func NewSnapshotRepository(cfg Config) (repository.SnapshotRepository, func(), error) {
	switch cfg.StorageDriver {
	case StorageRedis:
		client, err := NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("storing board state in redis at %s under %q", cfg.RedisAddr, cfg.StorageKey)
		return repository.NewRedisSnapshotRepository(client, cfg.StorageKey), client.Close, nil
	default:
		db := New(cfg.DatabaseDSN, cfg.Debug)
		log.Infof("storing board state in sqlite %s under %q", cfg.DatabaseDSN, cfg.StorageKey)
		return repository.NewSQLiteSnapshotRepository(db, cfg.StorageKey), func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	}
}
