package core

import "github.com/pkg/errors"

type (
	// FieldError names an invalid input field, e.g. `groups[3]` of a roster export.
	FieldError struct {
		Field string
		Error string
	}

	// ValidationError reports invalid configuration or roster input, field by field.
	ValidationError struct {
		Err    error
		Fields []FieldError
	}
)

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// InvalidField reports a single invalid field; the error reads "<field>: <msg>".
func InvalidField(field, msg string) error {
	return &ValidationError{
		Err:    errors.Errorf("%s: %s", field, msg),
		Fields: []FieldError{{Field: field, Error: msg}},
	}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// InvalidFields returns the invalid fields carried by the cause of err, if any.
func InvalidFields(err error) ([]FieldError, bool) {
	verr, ok := errors.Cause(err).(*ValidationError)
	if !ok {
		return nil, false
	}
	return verr.Fields, true
}

func IsValidationError(err error) bool {
	_, ok := InvalidFields(err)
	return ok
}
