package model

import "task-board.com/task-board/pkg/constants"

// TaskFilters is the active filter set. A nil field means the filter is off.
type TaskFilters struct {
	Status   *constants.TaskStatus   `json:"status,omitempty"`
	Priority *constants.TaskPriority `json:"priority,omitempty"`
	Search   *string                 `json:"search,omitempty"`
}

func (f TaskFilters) Clone() TaskFilters {
	out := TaskFilters{}
	if f.Status != nil {
		s := *f.Status
		out.Status = &s
	}
	if f.Priority != nil {
		p := *f.Priority
		out.Priority = &p
	}
	if f.Search != nil {
		q := *f.Search
		out.Search = &q
	}
	return out
}

// FilterPatch merges into TaskFilters: keys left out are kept, keys sent as
// null are cleared.
type FilterPatch struct {
	Status   Optional[constants.TaskStatus]   `json:"status"`
	Priority Optional[constants.TaskPriority] `json:"priority"`
	Search   Optional[string]                 `json:"search"`
}

type TaskSort struct {
	Field     constants.SortField     `json:"field"`
	Direction constants.SortDirection `json:"direction"`
}

func DefaultSort() TaskSort {
	return TaskSort{Field: constants.SortByCreatedAt, Direction: constants.SortDesc}
}

// SnapshotVersion is bumped when the persisted layout changes.
const SnapshotVersion = 1

// Snapshot is the whole store state as written under the storage key.
type Snapshot struct {
	Version int         `json:"version"`
	Tasks   []Task      `json:"tasks"`
	Filters TaskFilters `json:"filters"`
	Sort    TaskSort    `json:"sort"`
}
