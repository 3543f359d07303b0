package editor

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/domain"
)

// DuplicateDateMessage is shown when the backend rejects a day without
// explaining why.
const DuplicateDateMessage = "이미 같은 날짜가 존재합니다."

var (
	ErrPlanNotSaved  = &domain.ValidationError{Field: "plan", Message: "save the plan before adding days"}
	ErrNoCurrentDay  = &domain.ValidationError{Field: "day", Message: "select a day first"}
	ErrItemNotLoaded = &domain.ValidationError{Field: "item", Message: "item is not in the current day"}
	ErrUnknownDay    = &domain.ValidationError{Field: "day", Message: "day does not belong to this plan"}
)

// ConflictError is a domain rule the backend refused, such as a duplicate
// trip date. Message is meant for the user verbatim.
type ConflictError struct {
	Message string
	Cause   error
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return e.Cause }

// MoveError reports a rejected reorder. The sequence is left as it was.
type MoveError struct {
	ItemID    int64
	Direction domain.Direction
	Cause     error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move item %s: %v", e.Direction, e.Cause)
}

func (e *MoveError) Unwrap() error { return e.Cause }

// FailureKind groups errors by how the user should be told about them.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureConflict
	FailureAuth
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureValidation:
		return "validation"
	case FailureConflict:
		return "conflict"
	case FailureAuth:
		return "auth"
	default:
		return "transport"
	}
}

// Classify maps err onto the failure taxonomy. Authentication wins over
// everything else so a wrapped 401 always sends the user to login.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNoCredential) {
		return FailureAuth
	}
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return FailureValidation
	}
	var conflict *ConflictError
	var move *MoveError
	if errors.As(err, &conflict) || errors.As(err, &move) {
		return FailureConflict
	}
	switch api.StatusOf(err) {
	case http.StatusBadRequest, http.StatusConflict:
		return FailureConflict
	}
	return FailureTransport
}

func isRejection(err error) bool {
	status := api.StatusOf(err)
	return status == http.StatusBadRequest || status == http.StatusConflict
}
