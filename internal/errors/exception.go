package errors

import (
	"errors"
	"net/http"
)

// Exception is a client-facing error carrying the HTTP status it maps to.
// Wrap it with fmt.Errorf("%w: ...") to attach detail.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text safe to show a client. Errors that are not
// an Exception are reported generically.
func PublicMessage(err error) string {
	var appErr *Exception
	if !errors.As(err, &appErr) {
		return http.StatusText(http.StatusInternalServerError)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		return appErr.Message
	}
	return err.Error()
}
