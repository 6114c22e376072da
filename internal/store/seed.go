package store

import (
	"time"

	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

// Seed appends the sample tasks shown on a fresh board.
func (s *Store) Seed() []model.Task {
	now := s.now()
	inTwoDays := now.Add(48 * time.Hour)
	inThreeDays := now.Add(72 * time.Hour)

	samples := []model.Task{
		{
			Title:       "Setup project structure",
			Description: "Create the basic folder structure and install dependencies",
			Status:      constants.StatusDone,
			Priority:    constants.PriorityHigh,
			Assignee:    "John Doe",
			CreatedAt:   now.Add(-24 * time.Hour),
		},
		{
			Title:       "Implement task management",
			Description: "Build CRUD operations for tasks",
			Status:      constants.StatusInProgress,
			Priority:    constants.PriorityHigh,
			DueDate:     &inTwoDays,
			Assignee:    "Jane Smith",
			CreatedAt:   now.Add(-12 * time.Hour),
		},
		{
			Title:       "Add drag and drop functionality",
			Description: "Implement drag and drop between columns",
			Status:      constants.StatusToDo,
			Priority:    constants.PriorityMedium,
			DueDate:     &inThreeDays,
			Assignee:    "Bob Johnson",
			CreatedAt:   now,
		},
	}

	for i := range samples {
		samples[i].ID = s.uniqueID()
		samples[i].UpdatedAt = samples[i].CreatedAt
		s.tasks = append(s.tasks, samples[i])
	}
	return cloneTasks(samples)
}
