package records

import "errors"

var (
	// ErrDuplicateEmail is returned by CreateUser when the email is already in the directory.
	ErrDuplicateEmail = errors.New("records: email already exists")
	// ErrInvalidUser wraps validation failures of a user candidate.
	ErrInvalidUser = errors.New("records: invalid user")
	// ErrStaffNotFound is returned when no staff member has the requested id.
	ErrStaffNotFound = errors.New("records: staff member not found")
	// ErrInvalidShift wraps validation failures of a schedule entry.
	ErrInvalidShift = errors.New("records: invalid shift")
)
