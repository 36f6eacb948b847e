package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInUse          = errors.New("record is referenced by transactions")
	ErrValidation     = errors.New("validation failed")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrUsernameTaken  = errors.New("username is already taken")
	ErrSelfDelete     = errors.New("cannot delete your own account")
	ErrSelfDemote     = errors.New("cannot revoke your own admin access")
)

func validationErr(err error) error {
	return fmt.Errorf("%w: %s", ErrValidation, err)
}

var (
	errInvalidPeriod = errors.New("period must be daily, weekly or monthly")
	errInvalidWindow = errors.New("end date is before start date")
)
