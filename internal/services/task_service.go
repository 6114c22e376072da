package services

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	apperrors "task-board.com/task-board/internal/errors"
	repository "task-board.com/task-board/internal/repositories"
	"task-board.com/task-board/internal/store"
	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

// TaskService serializes access to the board store and persists a snapshot
// after every successful mutation.
type TaskService struct {
	mu        sync.RWMutex
	store     *store.Store
	repo      repository.SnapshotRepository
	persister *PersistService
}

func NewTaskService(
	st *store.Store,
	repo repository.SnapshotRepository,
	persister *PersistService,
) *TaskService {
	return &TaskService{
		store:     st,
		repo:      repo,
		persister: persister,
	}
}

// Load rehydrates the store from the repository. With nothing stored and
// seed set, the sample tasks are added and persisted.
func (s *TaskService) Load(ctx context.Context, seed bool) error {
	snapshot, ok, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok {
		if err := s.store.Restore(snapshot); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		log.Infof("restored %d tasks from storage", s.store.Len())
		return nil
	}

	if seed {
		s.store.Seed()
		s.persistLocked()
		log.Infof("seeded %d sample tasks", s.store.Len())
	}
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, input model.TaskInput) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.store.Add(input)
	if err != nil {
		return nil, err
	}
	s.persistLocked()

	log.WithField("task_id", task.ID).Debug("task created")
	return &task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	return &task, nil
}

// UpdateTask returns a nil task and nil error when id is unknown.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, found, err := s.store.Update(id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		log.WithField("task_id", id).Debug("update of unknown task ignored")
		return nil, nil
	}
	s.persistLocked()

	return &task, nil
}

// MoveTask changes a task's status. Unknown ids are ignored like UpdateTask.
func (s *TaskService) MoveTask(ctx context.Context, id string, status constants.TaskStatus) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, found, err := s.store.SetStatus(id, status)
	if err != nil {
		return nil, err
	}
	if !found {
		log.WithField("task_id", id).Debug("move of unknown task ignored")
		return nil, nil
	}
	s.persistLocked()

	return &task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Delete(id) {
		s.persistLocked()
	}
	return nil
}

func (s *TaskService) ListTasks(ctx context.Context) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.VisibleTasks()
}

func (s *TaskService) ListTasksByStatus(ctx context.Context, status constants.TaskStatus) ([]model.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.TasksByStatus(status), nil
}

func (s *TaskService) Board(ctx context.Context) []model.BoardColumn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Board()
}

func (s *TaskService) Filters(ctx context.Context) model.TaskFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Filters()
}

func (s *TaskService) SetFilters(ctx context.Context, patch model.FilterPatch) (model.TaskFilters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filters, err := s.store.SetFilters(patch)
	if err != nil {
		return filters, err
	}
	s.persistLocked()

	return filters, nil
}

func (s *TaskService) Sort(ctx context.Context) model.TaskSort {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Sort()
}

func (s *TaskService) SetSort(ctx context.Context, sort model.TaskSort) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetSort(sort); err != nil {
		return err
	}
	s.persistLocked()

	return nil
}

func (s *TaskService) Snapshot(ctx context.Context) model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Snapshot()
}

func (s *TaskService) Restore(ctx context.Context, snapshot model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Restore(snapshot); err != nil {
		return err
	}
	s.persistLocked()

	return nil
}

// Flush blocks until pending snapshots are written.
func (s *TaskService) Flush(ctx context.Context) error {
	return s.persister.Flush(ctx)
}

func (s *TaskService) persistLocked() {
	s.persister.Submit(s.store.Snapshot())
}
