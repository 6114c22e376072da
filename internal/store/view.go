package store

import (
	"slices"
	"strings"

	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

func (s *Store) Filters() model.TaskFilters {
	return s.filters.Clone()
}

// SetFilters merges patch into the current filters. Unset keys are kept,
// null keys are cleared, and a blank search counts as cleared.
func (s *Store) SetFilters(patch model.FilterPatch) (model.TaskFilters, error) {
	next := s.filters.Clone()

	if patch.Status.Set {
		next.Status = nil
		if v := patch.Status.Value; v != nil && *v != "" {
			if err := validateStatus(*v); err != nil {
				return s.Filters(), err
			}
			status := *v
			next.Status = &status
		}
	}
	if patch.Priority.Set {
		next.Priority = nil
		if v := patch.Priority.Value; v != nil && *v != "" {
			if err := validatePriority(*v); err != nil {
				return s.Filters(), err
			}
			priority := *v
			next.Priority = &priority
		}
	}
	if patch.Search.Set {
		next.Search = nil
		if v := patch.Search.Value; v != nil && strings.TrimSpace(*v) != "" {
			search := *v
			next.Search = &search
		}
	}

	s.filters = next
	return s.Filters(), nil
}

func (s *Store) Sort() model.TaskSort {
	return s.sort
}

func (s *Store) SetSort(sort model.TaskSort) error {
	if err := validateSort(sort); err != nil {
		return err
	}
	s.sort = sort
	return nil
}

// VisibleTasks applies the status, priority and search filters in that
// order and sorts what is left. The stored collection is not modified.
func (s *Store) VisibleTasks() []model.Task {
	return visible(s.tasks, s.filters, s.sort)
}

// TasksByStatus is VisibleTasks narrowed to a single column.
func (s *Store) TasksByStatus(status constants.TaskStatus) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range s.VisibleTasks() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Board groups the visible tasks into the fixed status columns.
func (s *Store) Board() []model.BoardColumn {
	tasks := s.VisibleTasks()
	columns := make([]model.BoardColumn, 0, len(constants.Statuses))
	for _, status := range constants.Statuses {
		col := model.BoardColumn{Status: status, Tasks: make([]model.Task, 0)}
		for _, t := range tasks {
			if t.Status == status {
				col.Tasks = append(col.Tasks, t)
			}
		}
		col.Count = len(col.Tasks)
		columns = append(columns, col)
	}
	return columns
}

func visible(tasks []model.Task, filters model.TaskFilters, sort model.TaskSort) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, filters) {
			out = append(out, t.Clone())
		}
	}
	sortTasks(out, sort)
	return out
}

func matches(t model.Task, filters model.TaskFilters) bool {
	if filters.Status != nil && t.Status != *filters.Status {
		return false
	}
	if filters.Priority != nil && t.Priority != *filters.Priority {
		return false
	}
	if filters.Search != nil {
		q := strings.ToLower(*filters.Search)
		return containsFold(t.Title, q) || containsFold(t.Description, q) || containsFold(t.Assignee, q)
	}
	return true
}

func containsFold(field, lowerQuery string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), lowerQuery)
}

// sortTasks orders tasks stably by the sort field. Tasks without a due date
// go last when sorting by due date, whichever the direction.
func sortTasks(tasks []model.Task, sort model.TaskSort) {
	desc := sort.Direction == constants.SortDesc

	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		if sort.Field == constants.SortByDueDate {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
		}

		c := compareBy(sort.Field, a, b)
		if desc {
			return -c
		}
		return c
	})
}

func compareBy(field constants.SortField, a, b model.Task) int {
	switch field {
	case constants.SortByDueDate:
		return a.DueDate.Compare(*b.DueDate)
	case constants.SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
