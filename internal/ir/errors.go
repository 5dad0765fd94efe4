package ir

import (
	"errors"
	"fmt"
)

// OpError represents a precondition violation detected by the builder
// before any kernel interaction.
//
// Every failure is synchronous and all-or-nothing: a rejected operation
// has allocated no boolean id, mutated no queue, and issued no kernel
// command. Errors raised inside the kernel itself propagate unchanged
// and never wear this type.
type OpError struct {
	// Code identifies the error category.
	Code OpErrorCode

	// Op names the public operation that was rejected.
	Op string

	// Message is a human-readable description.
	Message string

	// EntityID identifies the offending entity, when one exists.
	EntityID string
}

// OpErrorCode categorizes builder precondition violations.
type OpErrorCode string

const (
	// ErrCodeIllegalDimension indicates the first boolean operand is not
	// a curve, surface or volume.
	ErrCodeIllegalDimension OpErrorCode = "ILLEGAL_DIMENSION"

	// ErrCodeIncompatibleDimension indicates a later input or tool
	// operand whose dimension differs from the first operand's.
	ErrCodeIncompatibleDimension OpErrorCode = "INCOMPATIBLE_DIMENSION"

	// ErrCodeInconsistentBooleanResult indicates the kernel returned
	// zero or several result groups where exactly one was required.
	ErrCodeInconsistentBooleanResult OpErrorCode = "INCONSISTENT_BOOLEAN_RESULT"

	// ErrCodeUseAfterDelete indicates a reference to an entity already
	// consumed by a boolean operation's delete flag.
	ErrCodeUseAfterDelete OpErrorCode = "USE_AFTER_DELETE"

	// ErrCodeNotSynchronized indicates a deferred-queue flush attempted
	// before the pending primitive definitions were committed.
	ErrCodeNotSynchronized OpErrorCode = "NOT_SYNCHRONIZED"
)

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s: %s: %s (entity=%s)", e.Code, e.Op, e.Message, e.EntityID)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// NewIllegalDimensionError builds an ILLEGAL_DIMENSION error.
func NewIllegalDimensionError(op string, dim int) *OpError {
	return &OpError{
		Code:    ErrCodeIllegalDimension,
		Op:      op,
		Message: fmt.Sprintf("illegal input dimension %d for boolean operation", dim),
	}
}

// NewIncompatibleDimensionError builds an INCOMPATIBLE_DIMENSION error
// for an operand whose dimension differs from the first operand's.
func NewIncompatibleDimensionError(op, entityID string, got, want int) *OpError {
	return &OpError{
		Code:     ErrCodeIncompatibleDimension,
		Op:       op,
		Message:  fmt.Sprintf("operand dimension %d does not match first operand dimension %d", got, want),
		EntityID: entityID,
	}
}

// NewInconsistentResultError builds an INCONSISTENT_BOOLEAN_RESULT error.
func NewInconsistentResultError(op string, groups int) *OpError {
	return &OpError{
		Code:    ErrCodeInconsistentBooleanResult,
		Op:      op,
		Message: fmt.Sprintf("kernel returned %d result groups, exactly one required", groups),
	}
}

// NewUseAfterDeleteError builds a USE_AFTER_DELETE error.
func NewUseAfterDeleteError(op, entityID string) *OpError {
	return &OpError{
		Code:     ErrCodeUseAfterDelete,
		Op:       op,
		Message:  "entity was consumed by an earlier boolean operation",
		EntityID: entityID,
	}
}

// NewNotSynchronizedError builds a NOT_SYNCHRONIZED error.
func NewNotSynchronizedError(op string) *OpError {
	return &OpError{
		Code:    ErrCodeNotSynchronized,
		Op:      op,
		Message: "pending primitive definitions have not been synchronized",
	}
}

// codeIs reports whether err is an OpError with the given code.
// Uses errors.As to handle wrapped errors.
func codeIs(err error, code OpErrorCode) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == code
	}
	return false
}

// IsIllegalDimension reports an ILLEGAL_DIMENSION error.
func IsIllegalDimension(err error) bool {
	return codeIs(err, ErrCodeIllegalDimension)
}

// IsIncompatibleDimension reports an INCOMPATIBLE_DIMENSION error.
func IsIncompatibleDimension(err error) bool {
	return codeIs(err, ErrCodeIncompatibleDimension)
}

// IsInconsistentResult reports an INCONSISTENT_BOOLEAN_RESULT error.
func IsInconsistentResult(err error) bool {
	return codeIs(err, ErrCodeInconsistentBooleanResult)
}

// IsUseAfterDelete reports a USE_AFTER_DELETE error.
func IsUseAfterDelete(err error) bool {
	return codeIs(err, ErrCodeUseAfterDelete)
}

// IsNotSynchronized reports a NOT_SYNCHRONIZED error.
func IsNotSynchronized(err error) bool {
	return codeIs(err, ErrCodeNotSynchronized)
}
