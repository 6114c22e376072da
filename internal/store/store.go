// Package store holds the task collection and the view preferences the
// board reads from. It is not safe for concurrent use; callers serialize
// access (see services.TaskService).
package store

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

type Store struct {
	tasks   []model.Task
	filters model.TaskFilters
	sort    model.TaskSort

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used for created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		sort:  model.DefaultSort(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Add(input model.TaskInput) (model.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return model.Task{}, err
	}

	status := input.Status
	if status == "" {
		status = constants.StatusToDo
	}
	if err := validateStatus(status); err != nil {
		return model.Task{}, err
	}

	priority := input.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	if err := validatePriority(priority); err != nil {
		return model.Task{}, err
	}

	now := s.now()
	task := model.Task{
		ID:          s.uniqueID(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    priority,
		Assignee:    strings.TrimSpace(input.Assignee),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.DueDate != nil {
		due := *input.DueDate
		task.DueDate = &due
	}

	s.tasks = append(s.tasks, task)
	return task.Clone(), nil
}

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Update merges patch into the task with the given id. A missing id is a
// no-op reported through the bool.
func (s *Store) Update(id string, patch model.TaskPatch) (model.Task, bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false, nil
	}

	next := s.tasks[i].Clone()
	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return model.Task{}, true, err
		}
		next.Title = title
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if err := validateStatus(*patch.Status); err != nil {
			return model.Task{}, true, err
		}
		next.Status = *patch.Status
	}
	if patch.Priority != nil {
		if err := validatePriority(*patch.Priority); err != nil {
			return model.Task{}, true, err
		}
		next.Priority = *patch.Priority
	}
	if patch.DueDate.Set {
		next.DueDate = nil
		if patch.DueDate.Value != nil {
			due := *patch.DueDate.Value
			next.DueDate = &due
		}
	}
	if patch.Assignee != nil {
		next.Assignee = strings.TrimSpace(*patch.Assignee)
	}

	next.UpdatedAt = s.touch(next.UpdatedAt)
	s.tasks[i] = next
	return next.Clone(), true, nil
}

// SetStatus moves a task to another column.
func (s *Store) SetStatus(id string, status constants.TaskStatus) (model.Task, bool, error) {
	if err := validateStatus(status); err != nil {
		return model.Task{}, false, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false, nil
	}

	s.tasks[i].Status = status
	s.tasks[i].UpdatedAt = s.touch(s.tasks[i].UpdatedAt)
	return s.tasks[i].Clone(), true, nil
}

// Delete removes the task and reports whether it existed.
func (s *Store) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}

// Tasks returns every task in insertion order, ignoring filters.
func (s *Store) Tasks() []model.Task {
	return cloneTasks(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool {
		return t.ID == id
	})
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// touch never lets updatedAt move backwards, even if the clock does.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
