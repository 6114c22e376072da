package store

import (
	"fmt"

	apperrors "task-board.com/task-board/internal/errors"
	model "task-board.com/task-board/pkg/models"
)

// Snapshot copies the whole state: tasks, filters and sort.
func (s *Store) Snapshot() model.Snapshot {
	return model.Snapshot{
		Version: model.SnapshotVersion,
		Tasks:   cloneTasks(s.tasks),
		Filters: s.filters.Clone(),
		Sort:    s.sort,
	}
}

// Restore replaces the whole state with snap. The snapshot is checked
// first; on error the store is left as it was.
func (s *Store) Restore(snap model.Snapshot) error {
	if snap.Version > model.SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", apperrors.ErrInvalidSnapshot, snap.Version)
	}

	sort := snap.Sort
	if sort.Field == "" && sort.Direction == "" {
		sort = model.DefaultSort()
	}
	if err := validateSort(sort); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidSnapshot, err)
	}

	filters := snap.Filters.Clone()
	if filters.Status != nil {
		if err := validateStatus(*filters.Status); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidSnapshot, err)
		}
	}
	if filters.Priority != nil {
		if err := validatePriority(*filters.Priority); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidSnapshot, err)
		}
	}
	if filters.Search != nil && *filters.Search == "" {
		filters.Search = nil
	}

	seen := make(map[string]struct{}, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task without id", apperrors.ErrInvalidSnapshot)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate task id %s", apperrors.ErrInvalidSnapshot, t.ID)
		}
		seen[t.ID] = struct{}{}

		if _, err := validateTitle(t.Title); err != nil {
			return fmt.Errorf("%w: task %s: %w", apperrors.ErrInvalidSnapshot, t.ID, err)
		}
		if err := validateStatus(t.Status); err != nil {
			return fmt.Errorf("%w: task %s: %w", apperrors.ErrInvalidSnapshot, t.ID, err)
		}
		if err := validatePriority(t.Priority); err != nil {
			return fmt.Errorf("%w: task %s: %w", apperrors.ErrInvalidSnapshot, t.ID, err)
		}
	}

	s.tasks = cloneTasks(snap.Tasks)
	s.filters = filters
	s.sort = sort
	return nil
}
