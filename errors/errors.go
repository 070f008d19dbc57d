package errors

import (
	"errors"
	"net/http"
)

var (
	NotFound            = HttpError{http.StatusNotFound, errors.New("not found")}
	BadRequest          = HttpError{http.StatusBadRequest, errors.New("bad request")}
	Forbidden           = HttpError{http.StatusForbidden, errors.New("forbidden")}
	InternalServerError = HttpError{http.StatusInternalServerError, errors.New("internal server error")}

	// StoreUnavailable is surfaced when the record store cannot be reached.
	// The operation is aborted with no partial write.
	StoreUnavailable = HttpError{http.StatusServiceUnavailable, errors.New("record store unavailable")}

	// AiUnavailable and AiRequestFailed only ever surface on the narrative
	// endpoints; the tabular report does not depend on the generator.
	AiUnavailable   = HttpError{http.StatusBadGateway, errors.New("narrative generator is not configured")}
	AiRequestFailed = HttpError{http.StatusBadGateway, errors.New("narrative generator request failed")}
)

type HttpError struct {
	Code int
	Err  error
}

func (h HttpError) Unwrap() error {
	return h.Err
}

func (h HttpError) Error() string {
	return h.Err.Error()
}

func New(code int, message string) HttpError {
	return HttpError{code, errors.New(message)}
}
