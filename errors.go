package stopcalendar

import (
	"errors"
	"net/http"
)

// ErrorKind classifies API failures.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidRequest
	KindNotFound
	KindGeneration
	KindMethodNotAllowed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindGeneration:
		return "generation_failure"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// APIError is returned to clients as {"error": Message}.
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Status maps the kind onto an HTTP status code.
func (e *APIError) Status() int {
	switch e.Kind {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func invalidRequest(msg string, err error) *APIError {
	return &APIError{Kind: KindInvalidRequest, Message: msg, Err: err}
}

func notFound(msg string, err error) *APIError {
	return &APIError{Kind: KindNotFound, Message: msg, Err: err}
}

func generationFailure(err error) *APIError {
	return &APIError{Kind: KindGeneration, Message: msgGenerationFailed, Err: err}
}

func internalError(err error) *APIError {
	return &APIError{Kind: KindInternal, Message: msgInternal, Err: err}
}

const (
	msgRouteNotFound    = "Route not found"
	msgScheduleNotFound = "Schedule not found"
	msgStopNotFound     = "Stop not found"
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
	msgScheduleParams   = "Route ID and day type are required"
	msgInvalidRequest   = "Invalid request data"
	msgGenerationFailed = "Failed to generate ICS file"
	msgInternal         = "Internal server error"
)

// asAPIError wraps anything that is not already an APIError as internal.
func asAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return internalError(err)
}
