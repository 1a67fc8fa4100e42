package domain

import (
	"errors"

	"refine.dev/pkg/refine/pkg/refinement"
)

var (
	// ErrInvalidScenario reports a scenario whose declarations are inconsistent.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrInvalidExpression reports a method body that cannot be evaluated.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrUnknownObject reports a reference to an undeclared object.
	ErrUnknownObject = errors.New("unknown object")
	// ErrUnknownType reports a reference to an undeclared type.
	ErrUnknownType = errors.New("unknown type")
	// ErrUnknownSet reports a reference to an undeclared override set.
	ErrUnknownSet = errors.New("unknown override set")
	// ErrUnknownCapture reports a re-entry into a scope never captured.
	ErrUnknownCapture = errors.New("unknown captured scope")
	// ErrExpectationsFailed is returned by Run when a scenario check failed.
	ErrExpectationsFailed = errors.New("scenario expectations failed")
)

// Error codes used by expect_error in scenario files.
const (
	CodeNoMethod          = "no_method"
	CodeDuplicateOverride = "duplicate_override"
	CodeInvalidTarget     = "invalid_target"
	CodeStackUnderflow    = "stack_underflow"
	CodeUnknownObject     = "unknown_object"
	CodeUnknownType       = "unknown_type"
	CodeUnknownSet        = "unknown_set"
	CodeUnknownCapture    = "unknown_capture"
	CodeInvalidExpression = "invalid_expression"
	CodeError             = "error"
)

// ErrorCode maps err to the code a scenario can expect.
func ErrorCode(err error) string {
	var (
		noMethod  *refinement.NoMethodError
		duplicate *refinement.DuplicateOverrideError
		invalid   *refinement.InvalidTargetError
		underflow *refinement.StackUnderflowError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &noMethod):
		return CodeNoMethod
	case errors.As(err, &duplicate):
		return CodeDuplicateOverride
	case errors.As(err, &invalid):
		return CodeInvalidTarget
	case errors.As(err, &underflow):
		return CodeStackUnderflow
	case errors.Is(err, ErrUnknownObject):
		return CodeUnknownObject
	case errors.Is(err, ErrUnknownType):
		return CodeUnknownType
	case errors.Is(err, ErrUnknownSet):
		return CodeUnknownSet
	case errors.Is(err, ErrUnknownCapture):
		return CodeUnknownCapture
	case errors.Is(err, ErrInvalidExpression):
		return CodeInvalidExpression
	}

	return CodeError
}
