package refinement

import (
	"context"
	"slices"
)

// ExecContext is one logical thread of execution: it owns a ScopeStack and
// the chain of regions currently open on it. It must not be shared between
// goroutines; use Fork to start a new one.
type ExecContext struct {
	stack   *ScopeStack
	regions []*Region
}

// NewExecContext returns an execution context with an empty stack.
func NewExecContext() *ExecContext {
	return &ExecContext{stack: NewScopeStack()}
}

// Stack exposes the underlying scope stack.
func (ec *ExecContext) Stack() *ScopeStack {
	return ec.stack
}

// Visible returns the frames dispatch would consult, most recent first.
func (ec *ExecContext) Visible() []Frame {
	return ec.stack.TopDown()
}

func (ec *ExecContext) innermost() *Region {
	if len(ec.regions) == 0 {
		return nil
	}

	return ec.regions[len(ec.regions)-1]
}

// enterBody marks a running method body. The nil entry shadows every
// region opened before it.
func (ec *ExecContext) enterBody() {
	ec.regions = append(ec.regions, nil)
}

func (ec *ExecContext) exitBody() {
	n := len(ec.regions)
	if n == 0 || ec.regions[n-1] != nil {
		panic("refinement: method body returned with a region still open")
	}

	ec.regions = ec.regions[:n-1]
}

type execContextKey struct{}

// WithExecContext returns a copy of ctx carrying ec.
func WithExecContext(ctx context.Context, ec *ExecContext) context.Context {
	return context.WithValue(ctx, execContextKey{}, ec)
}

// ExecContextFrom returns the ExecContext carried by ctx.
func ExecContextFrom(ctx context.Context) (*ExecContext, bool) {
	ec, ok := ctx.Value(execContextKey{}).(*ExecContext)
	return ec, ok && ec != nil
}

func execContext(ctx context.Context) (*ExecContext, error) {
	ec, ok := ExecContextFrom(ctx)
	if !ok {
		return nil, ErrNoExecContext
	}

	return ec, nil
}

// CapturedScope is an immutable snapshot of visible frames.
type CapturedScope struct {
	// frames are stored most recent first.
	frames []Frame
}

// Frames returns the captured frames, most recent first.
func (c *CapturedScope) Frames() []Frame {
	if c == nil {
		return nil
	}

	return slices.Clone(c.frames)
}

// Len returns the number of captured frames.
func (c *CapturedScope) Len() int {
	if c == nil {
		return 0
	}

	return len(c.frames)
}

// Capture snapshots the frames visible in ctx's execution context.
func Capture(ctx context.Context) (*CapturedScope, error) {
	ec, err := execContext(ctx)
	if err != nil {
		return nil, err
	}

	return &CapturedScope{frames: ec.stack.TopDown()}, nil
}

// Fork derives a context for a new goroutine. The new execution context
// starts with the frames visible in ctx; later activations on either side
// are not observed by the other.
func Fork(ctx context.Context) (context.Context, error) {
	captured, err := Capture(ctx)
	if err != nil {
		return nil, err
	}

	child := NewExecContext()
	pushCaptured(child.stack, captured)

	return WithExecContext(ctx, child), nil
}

// pushCaptured pushes captured frames bottom first so that TopDown order
// is preserved. It returns the number of frames pushed.
func pushCaptured(stack *ScopeStack, captured *CapturedScope) int {
	if captured == nil {
		return 0
	}

	for i := len(captured.frames) - 1; i >= 0; i-- {
		stack.Push(captured.frames[i])
	}

	return len(captured.frames)
}
