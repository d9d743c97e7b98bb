package ledger

import (
	"fmt"
	"strings"
)

// ValidationError describes a single problem in an input record.
type ValidationError struct {
	Record  string
	Field   string
	Problem string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Record, e.Field, e.Problem)
}

// ValidationErrors collects every problem found in one file.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// orNil returns nil for an empty list so callers can return it as error.
func (errs ValidationErrors) orNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
