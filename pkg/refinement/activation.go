package refinement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ActivationManager opens regions and applies the propagation rules:
// lexical nesting, sticky attachment while defining a type, and dynamic
// re-entry into a type's or a captured scope.
type ActivationManager struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewActivationManager returns a manager sharing resolver's sticky registry.
func NewActivationManager(resolver *Resolver) *ActivationManager {
	return &ActivationManager{
		resolver: resolver,
		logger:   resolver.logger,
	}
}

// Region is one activation region. Its frames are pushed on Activate and
// all popped together on Exit.
type Region struct {
	manager  *ActivationManager
	ec       *ExecContext
	kind     ScopeKind
	name     string
	defining *TypeRef
	active   map[*OverrideSet]struct{}
	pushed   int
	closed   bool
}

// Enter opens a region of the given kind on ctx's execution context.
// Callers must Exit it on every path, typically with defer.
func (am *ActivationManager) Enter(ctx context.Context, kind ScopeKind, name string) (*Region, error) {
	ec, err := execContext(ctx)
	if err != nil {
		return nil, err
	}

	return am.enter(ec, kind, name, nil), nil
}

func (am *ActivationManager) enter(ec *ExecContext, kind ScopeKind, name string, defining *TypeRef) *Region {
	region := &Region{
		manager:  am,
		ec:       ec,
		kind:     kind,
		name:     name,
		defining: defining,
		active:   make(map[*OverrideSet]struct{}),
	}
	ec.regions = append(ec.regions, region)

	return region
}

// Run enters a region, calls fn and exits the region whatever fn does.
func (am *ActivationManager) Run(ctx context.Context, kind ScopeKind, name string, fn func(context.Context, *Region) error) error {
	region, err := am.Enter(ctx, kind, name)
	if err != nil {
		return err
	}

	defer region.Exit()

	return fn(ctx, region)
}

// DefineType opens the defining region of t. Every set activated in that
// region is also attached to t, so it stays visible for receivers of t
// and its subtypes wherever they are dispatched from.
func (am *ActivationManager) DefineType(ctx context.Context, t TypeRef, fn func(context.Context, *Region) error) error {
	ec, err := execContext(ctx)
	if err != nil {
		return err
	}

	kind, err := am.scopeKindOf(t)
	if err != nil {
		return err
	}

	owner := t.Instance()
	region := am.enter(ec, kind, owner.Name, &owner)

	defer region.Exit()

	return fn(ctx, region)
}

// scopeKindOf maps t to the scope kind of the regions that run in its body.
func (am *ActivationManager) scopeKindOf(t TypeRef) (ScopeKind, error) {
	switch am.resolver.types.KindOf(t) {
	case KindClass:
		return ScopeClass, nil
	case KindModule:
		return ScopeModule, nil
	default:
		return 0, &InvalidTargetError{Target: t, Reason: "unknown type"}
	}
}

// Reenter runs fn inside t's context: the sets attached to t and its
// ancestors are active for the duration of fn even if the caller never
// activated them.
func (am *ActivationManager) Reenter(ctx context.Context, t TypeRef, fn func(context.Context) error) error {
	ec, err := execContext(ctx)
	if err != nil {
		return err
	}

	kind, err := am.scopeKindOf(t)
	if err != nil {
		return err
	}

	region := am.enter(ec, kind, "reenter "+t.Name, nil)
	defer region.Exit()

	ancestors := am.resolver.ancestors(t.Instance())

	// Push least specific first so the type's own, most recent sets end up
	// on top of the stack.
	for i := len(ancestors) - 1; i >= 0; i-- {
		sets := am.resolver.sticky.attached(ancestors[i].Name)
		for j := len(sets) - 1; j >= 0; j-- {
			if err := region.Activate(sets[j]); err != nil {
				return err
			}
		}
	}

	return fn(ctx)
}

// ReenterCaptured runs fn with the frames of captured pushed on top of the
// current stack.
func (am *ActivationManager) ReenterCaptured(ctx context.Context, captured *CapturedScope, fn func(context.Context) error) error {
	ec, err := execContext(ctx)
	if err != nil {
		return err
	}

	region := am.enter(ec, ScopeModule, "reenter captured", nil)
	defer region.Exit()

	frames := captured.Frames()
	for i := len(frames) - 1; i >= 0; i-- {
		if err := region.push(frames[i]); err != nil {
			return err
		}
	}

	return fn(ctx)
}

// Activate makes set visible in this region and every region nested in
// it. Activating a set already active in this region is a no-op.
func (r *Region) Activate(set *OverrideSet) error {
	if set == nil {
		return errors.New("activate: nil override set")
	}

	return r.push(Frame{Set: set, Kind: r.kind, Region: r.name})
}

func (r *Region) push(frame Frame) error {
	if r.closed {
		return ErrRegionClosed
	}

	if r.ec.innermost() != r {
		return fmt.Errorf("activate %s in region %q: %w", frame.Set.Name(), r.name, ErrRegionNotInnermost)
	}

	if _, dup := r.active[frame.Set]; dup {
		return nil
	}

	r.active[frame.Set] = struct{}{}
	r.ec.stack.Push(frame)
	r.pushed++

	if r.defining != nil && r.manager.resolver.sticky.attach(r.defining.Name, frame.Set) {
		r.manager.logger.Debug("override set attached", "type", r.defining.Name, "set", frame.Set.Name())
	}

	r.manager.logger.Debug("override set activated", "set", frame.Set.Name(), "region", r.name, "kind", frame.Kind)

	return nil
}

// Exit pops every frame this region pushed. Exiting twice is a no-op.
// Exiting out of order or finding the stack short is a bookkeeping bug
// and panics.
func (r *Region) Exit() {
	if r.closed {
		return
	}

	if r.ec.innermost() != r {
		panic(fmt.Sprintf("refinement: region %q exited while a nested region is still open", r.name))
	}

	for range r.pushed {
		if _, err := r.ec.stack.Pop(); err != nil {
			panic(err)
		}
	}

	r.ec.regions = r.ec.regions[:len(r.ec.regions)-1]
	r.pushed = 0
	r.closed = true
}

// Kind returns the region's scope kind.
func (r *Region) Kind() ScopeKind {
	return r.kind
}

// Name returns the region's name.
func (r *Region) Name() string {
	return r.name
}

// Closed reports whether the region has exited.
func (r *Region) Closed() bool {
	return r.closed
}

// Defining returns the type this region defines, if any.
func (r *Region) Defining() (TypeRef, bool) {
	if r.defining == nil {
		return TypeRef{}, false
	}

	return *r.defining, true
}
