package notebook

import (
	"errors"
	"fmt"

	"github.com/Joseda-hg/notebook/internal/db"
	"github.com/Joseda-hg/notebook/internal/report"
)

var (
	ErrDuplicateUsername  = db.ErrDuplicateUsername
	ErrInvalidCredentials = db.ErrInvalidCredentials
	ErrNoData             = report.ErrNoData
	ErrNoSession          = errors.New("not logged in")
)

// ValidationError reports a required field that is missing or out of range.
// It is raised before the store is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
