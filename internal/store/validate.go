package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

const MaxTitleLength = 100

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.ErrTaskTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", apperrors.ErrTaskTitleTooLong
	}
	return title, nil
}

func validateStatus(status constants.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}
	return nil
}

func validatePriority(priority constants.TaskPriority) error {
	if !priority.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidPriority, priority)
	}
	return nil
}

func validateSort(sort model.TaskSort) error {
	if !sort.Field.Valid() || !sort.Direction.Valid() {
		return fmt.Errorf("%w: %s %s", apperrors.ErrInvalidSort, sort.Field, sort.Direction)
	}
	return nil
}
