package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, rueidis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	if err != nil {
		t.Fatalf("connect rueidis: %v", err)
	}
	t.Cleanup(client.Close)

	return mr, client
}

func sampleSnapshot() model.Snapshot {
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	due := created.Add(72 * time.Hour)
	search := "docs"
	status := constants.StatusInProgress

	return model.Snapshot{
		Version: model.SnapshotVersion,
		Tasks: []model.Task{
			{ID: "a", Title: "Write docs", Status: constants.StatusInProgress, Priority: constants.PriorityHigh, DueDate: &due, CreatedAt: created, UpdatedAt: created},
			{ID: "b", Title: "Ship", Description: "v1", Status: constants.StatusToDo, Priority: constants.PriorityLow, Assignee: "Ana", CreatedAt: created, UpdatedAt: created},
		},
		Filters: model.TaskFilters{Status: &status, Search: &search},
		Sort:    model.TaskSort{Field: constants.SortByPriority, Direction: constants.SortAsc},
	}
}

func assertSnapshotEqual(t *testing.T, got, want model.Snapshot) {
	t.Helper()
	if got.Version != want.Version || got.Sort != want.Sort {
		t.Fatalf("header mismatch: got %+v/%+v, want %+v/%+v", got.Version, got.Sort, want.Version, want.Sort)
	}
	if len(got.Tasks) != len(want.Tasks) {
		t.Fatalf("expected %d tasks, got %d", len(want.Tasks), len(got.Tasks))
	}
	for i := range want.Tasks {
		g, w := got.Tasks[i], want.Tasks[i]
		if g.ID != w.ID || g.Title != w.Title || g.Description != w.Description || g.Assignee != w.Assignee ||
			g.Status != w.Status || g.Priority != w.Priority || !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("task %d mismatch: got %+v, want %+v", i, g, w)
		}
		if (g.DueDate == nil) != (w.DueDate == nil) || (g.DueDate != nil && !g.DueDate.Equal(*w.DueDate)) {
			t.Errorf("task %d due date mismatch", i)
		}
	}
	if got.Filters.Status == nil || *got.Filters.Status != *want.Filters.Status {
		t.Errorf("status filter mismatch: %+v", got.Filters)
	}
	if got.Filters.Search == nil || *got.Filters.Search != *want.Filters.Search || got.Filters.Priority != nil {
		t.Errorf("filters mismatch: %+v", got.Filters)
	}
}

func exerciseRepository(t *testing.T, repo SnapshotRepository) {
	ctx := context.Background()

	if _, ok, err := repo.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty repository, got ok=%v err=%v", ok, err)
	}

	want := sampleSnapshot()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := repo.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	assertSnapshotEqual(t, got, want)

	// second save overwrites the same key
	want.Tasks = want.Tasks[:1]
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = repo.Load(ctx)
	if len(got.Tasks) != 1 {
		t.Fatalf("expected overwrite to leave 1 task, got %d", len(got.Tasks))
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := repo.Load(ctx); ok {
		t.Fatal("expected nothing after clear")
	}
}

func TestSQLiteSnapshotRepository(t *testing.T) {
	exerciseRepository(t, NewSQLiteSnapshotRepository(setupTestDB(t), ""))
}

func TestSQLiteSnapshotRepository_KeysAreIsolated(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := NewSQLiteSnapshotRepository(db, "board-a")
	second := NewSQLiteSnapshotRepository(db, "board-b")

	if err := first.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, _ := second.Load(ctx); ok {
		t.Fatal("expected board-b to be empty")
	}

	var count int64
	db.Model(&model.KVEntry{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single row, got %d", count)
	}
}

func TestRedisSnapshotRepository(t *testing.T) {
	_, client := setupTestRedis(t)
	exerciseRepository(t, NewRedisSnapshotRepository(client, ""))
}

func TestRedisSnapshotRepository_UsesNamespacedKey(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisSnapshotRepository(client, "")

	if err := repo.Save(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists(DefaultStorageKey) {
		t.Fatalf("expected key %q to be written", DefaultStorageKey)
	}
	if keys := mr.Keys(); len(keys) != 1 {
		t.Errorf("expected exactly one key, got %v", keys)
	}
}

func TestRedisSnapshotRepository_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisSnapshotRepository(client, "")

	if err := mr.Set(DefaultStorageKey, "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := repo.Load(context.Background()); err == nil {
		t.Fatal("expected decode error for corrupt value")
	}
}
