package model

import (
	"time"

	"task-board.com/task-board/pkg/constants"
)

type Task struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Status      constants.TaskStatus   `json:"status"`
	Priority    constants.TaskPriority `json:"priority"`
	DueDate     *time.Time             `json:"dueDate,omitempty"`
	Assignee    string                 `json:"assignee,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// TaskInput carries the fields accepted when creating a task.
// Empty Status and Priority fall back to To Do and Medium.
type TaskInput struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Status      constants.TaskStatus   `json:"status,omitempty"`
	Priority    constants.TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time             `json:"dueDate,omitempty"`
	Assignee    string                 `json:"assignee,omitempty"`
}

// TaskPatch is a partial update. Nil pointers and unset optionals leave the
// field untouched; an empty Description or Assignee clears it.
type TaskPatch struct {
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Status      *constants.TaskStatus   `json:"status,omitempty"`
	Priority    *constants.TaskPriority `json:"priority,omitempty"`
	DueDate     Optional[time.Time]     `json:"dueDate"`
	Assignee    *string                 `json:"assignee,omitempty"`
}

// BoardColumn is one status column of the board with its visible tasks.
type BoardColumn struct {
	Status constants.TaskStatus `json:"status"`
	Count  int                  `json:"count"`
	Tasks  []Task               `json:"tasks"`
}
