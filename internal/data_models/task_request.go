package dto

import (
	"time"

	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

type CreateTaskRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      constants.TaskStatus   `json:"status"`
	Priority    constants.TaskPriority `json:"priority"`
	DueDate     *time.Time             `json:"dueDate"`
	Assignee    string                 `json:"assignee"`
}

func (r CreateTaskRequest) ToInput() model.TaskInput {
	return model.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Assignee:    r.Assignee,
	}
}

// UpdateTaskRequest is a partial update; "dueDate": null clears the due date.
type UpdateTaskRequest struct {
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	Status      *constants.TaskStatus     `json:"status"`
	Priority    *constants.TaskPriority   `json:"priority"`
	DueDate     model.Optional[time.Time] `json:"dueDate"`
	Assignee    *string                   `json:"assignee"`
}

func (r UpdateTaskRequest) ToPatch() model.TaskPatch {
	return model.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Assignee:    r.Assignee,
	}
}

type UpdateStatusRequest struct {
	Status constants.TaskStatus `json:"status"`
}

type TaskListResponse struct {
	Count   int               `json:"count"`
	Tasks   []model.Task      `json:"tasks"`
	Filters model.TaskFilters `json:"filters"`
	Sort    model.TaskSort    `json:"sort"`
}
