package refinement

import (
	"errors"
	"fmt"
)

var (
	// ErrNoExecContext is returned when a context carries no ExecContext.
	ErrNoExecContext = errors.New("no execution context attached to context")
	// ErrRegionClosed is returned when a region is used after it exited.
	ErrRegionClosed = errors.New("region already exited")
	// ErrRegionNotInnermost is returned when a region other than the
	// innermost open one tries to push frames.
	ErrRegionNotInnermost = errors.New("region is not the innermost open region")
)

// DuplicateOverrideError reports a key declared twice in one Define call.
type DuplicateOverrideError struct {
	Set string
	Key Key
}

func (e *DuplicateOverrideError) Error() string {
	return fmt.Sprintf("override set %q declares %s more than once", e.Set, e.Key)
}

// InvalidTargetError reports an override aimed at something that cannot
// carry overrides.
type InvalidTargetError struct {
	Set    string
	Target TypeRef
	Reason string
}

func (e *InvalidTargetError) Error() string {
	if e.Set == "" {
		return fmt.Sprintf("invalid target %s: %s", e.Target, e.Reason)
	}

	return fmt.Sprintf("override set %q: invalid target %s: %s", e.Set, e.Target, e.Reason)
}

// NoMethodError reports a dispatch that found no override and no base
// implementation. Super is set when the miss happened while looking for a
// shadowed implementation.
type NoMethodError struct {
	Receiver TypeRef
	Method   string
	Super    bool
}

func (e *NoMethodError) Error() string {
	if e.Super {
		return fmt.Sprintf("no shadowed method %q for %s", e.Method, e.Receiver)
	}

	return fmt.Sprintf("undefined method %q for %s", e.Method, e.Receiver)
}

// StackUnderflowError reports a pop without a matching push. It always
// indicates broken bookkeeping in the host.
type StackUnderflowError struct {
	Op string
}

func (e *StackUnderflowError) Error() string {
	return "scope stack underflow: " + e.Op
}
