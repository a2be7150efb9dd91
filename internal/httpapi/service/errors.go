package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrReviewExists            = errors.New("review already exists for this title and author")
	ErrForbidden               = errors.New("insufficient permissions")
)

// SignupPairError is returned when exactly one of email/username already
// maps to an account. Naming both sides keeps the error symmetric so
// repeated probing reveals nothing beyond the mismatch itself.
type SignupPairError struct {
	Exists  string
	Missing string
}

func (e *SignupPairError) Error() string {
	return fmt.Sprintf("Incorrect pair: %s exists but %s doesn't exist.", e.Exists, e.Missing)
}
