package course

import "errors"

var (
	// ErrInvalidAssignment is returned when groups must be assigned but there are no graders.
	ErrInvalidAssignment = errors.New("no graders available for assignment")
	// ErrMalformedGroup is returned when a group has no member to represent it.
	ErrMalformedGroup = errors.New("group has no members")
	// ErrDivisionUndefined is returned when the expected grading load is computed for zero graders.
	ErrDivisionUndefined = errors.New("expected load is undefined without graders")
)
