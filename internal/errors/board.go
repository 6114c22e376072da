package errors

import "net/http"

var (
	ErrInvalidSort = &Exception{
		Message:    "sort field must be createdAt, priority or dueDate and direction asc or desc",
		StatusCode: http.StatusBadRequest,
	}
	ErrInvalidSnapshot = &Exception{
		Message:    "invalid snapshot",
		StatusCode: http.StatusBadRequest,
	}
	ErrInvalidJSON = &Exception{
		Message:    "invalid JSON payload",
		StatusCode: http.StatusBadRequest,
	}
)

// ErrRecipeFetchFailed wraps any failure talking to the recipe API.
var ErrRecipeFetchFailed = &Exception{
	Message:    "failed to fetch recipes",
	StatusCode: http.StatusBadGateway,
}
