package errors

import "net/http"

// Task lookup and validation failures.
var (
	ErrTaskNotFound = &Exception{
		Message:    "task not found",
		StatusCode: http.StatusNotFound,
	}
	ErrTaskIDRequired = &Exception{
		Message:    "task id is required",
		StatusCode: http.StatusBadRequest,
	}
	ErrTaskTitleRequired = &Exception{
		Message:    "title is required",
		StatusCode: http.StatusBadRequest,
	}
	ErrTaskTitleTooLong = &Exception{
		Message:    "title must be at most 100 characters",
		StatusCode: http.StatusBadRequest,
	}
	ErrInvalidStatus = &Exception{
		Message:    "status must be one of To Do, In Progress, Done",
		StatusCode: http.StatusBadRequest,
	}
	ErrInvalidPriority = &Exception{
		Message:    "priority must be one of Low, Medium, High",
		StatusCode: http.StatusBadRequest,
	}
)
