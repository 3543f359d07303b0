package service

import (
	"errors"
	"fmt"
)

// ErrNoActivePlan is returned when no plan has been selected with "use".
var ErrNoActivePlan = errors.New("no active plan; run 'travelsay use <plan-id>' or pass --plan")

// LoginRejectedError is a sign-in the backend turned down, usually a wrong
// login id or password. It still matches api.ErrUnauthorized.
type LoginRejectedError struct {
	LoginID string
	Cause   error
}

func (e *LoginRejectedError) Error() string {
	return fmt.Sprintf("sign-in as %s rejected: %v", e.LoginID, e.Cause)
}

func (e *LoginRejectedError) Unwrap() error { return e.Cause }
