package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them,
// so callers classify with errors.Is and inspect details with errors.As.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrAlreadyAssigned   = errors.New("already assigned")
	ErrAlreadyExists     = errors.New("object already exists")
)

// IsValidation reports whether err is (or wraps) one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// ObjectNotFoundError is returned when a record with the given ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value is present but malformed.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a numeric value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError is returned by repositories when an optimistic
// version check fails, i.e. another writer changed the record first.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidTransitionError is returned when a lifecycle move is not allowed
// from the current status.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %v)", ErrInvalidTransition, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PermissionDeniedError is returned when the actor's role or identity does
// not allow the requested action.
type PermissionDeniedError struct {
	ActorID string
	Action  string
	Cause   error
}

func NewPermissionDeniedError(actorID, action string) *PermissionDeniedError {
	return &PermissionDeniedError{ActorID: actorID, Action: action}
}

func NewPermissionDeniedErrorWithCause(actorID, action string, cause error) *PermissionDeniedError {
	return &PermissionDeniedError{ActorID: actorID, Action: action, Cause: cause}
}

func (e *PermissionDeniedError) Error() string {
	msg := fmt.Sprintf("%s: actor %s may not %s", ErrPermissionDenied, sanitize(e.ActorID), e.Action)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// AlreadyAssignedError is returned when accepting a request that already
// has a delivery person.
type AlreadyAssignedError struct {
	RequestID  string
	AssigneeID string
}

func NewAlreadyAssignedError(requestID, assigneeID string) *AlreadyAssignedError {
	return &AlreadyAssignedError{RequestID: requestID, AssigneeID: assigneeID}
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("%s: request %s is assigned to %s", ErrAlreadyAssigned, e.RequestID, e.AssigneeID)
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrAlreadyAssigned
}

// ObjectAlreadyExistsError is returned when a unique record is created twice.
type ObjectAlreadyExistsError struct {
	ParamName string
	ID        any
}

func NewObjectAlreadyExistsError(paramName string, id any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id}
}

func (e *ObjectAlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAlreadyExists, e.ParamName, sanitize(e.ID))
}

func (e *ObjectAlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
