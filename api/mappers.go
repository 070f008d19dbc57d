package api

import (
	"errors"
	"net/http"

	"github.com/motuslabs/rehab/ai"
	"github.com/motuslabs/rehab/assignments"
	errs "github.com/motuslabs/rehab/errors"
	"github.com/motuslabs/rehab/records"
	"github.com/motuslabs/rehab/users"
)

// asHTTPError maps domain errors onto the HTTP taxonomy. Infrastructure
// errors keep their own message; validation errors surface verbatim so the
// user sees what to fix.
func asHTTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, users.ErrMissingFields),
		errors.Is(err, users.ErrPasswordMismatch),
		errors.Is(err, users.ErrInvalidRole),
		errors.Is(err, assignments.ErrMissingIds):
		return errs.New(http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrDuplicate):
		return errs.New(http.StatusConflict, err.Error())
	case errors.Is(err, users.ErrInvalidCredentials):
		return errs.New(http.StatusUnauthorized, err.Error())
	case errors.Is(err, users.ErrNotFound),
		errors.Is(err, assignments.ErrNotFound):
		return errs.NotFound
	case errors.Is(err, records.ErrStoreUnavailable):
		return errs.StoreUnavailable
	case errors.Is(err, ai.ErrUnavailable):
		return errs.AiUnavailable
	case errors.Is(err, ai.ErrRequestFailed):
		return errs.AiRequestFailed
	}
	return err
}
