package refinement

import (
	"context"
	"fmt"
	"log/slog"
)

// Source tells where a resolved implementation came from.
type Source int

const (
	// SourceFrame is an override activated on the calling context's stack.
	SourceFrame Source = iota
	// SourceSticky is an override attached to the receiver's type.
	SourceSticky
	// SourceBase is the host's own implementation.
	SourceBase
)

func (s Source) String() string {
	switch s {
	case SourceFrame:
		return "frame"
	case SourceSticky:
		return "sticky"
	case SourceBase:
		return "base"
	}

	return fmt.Sprintf("Source(%d)", int(s))
}

// Resolution describes the implementation a dispatch would run.
type Resolution struct {
	Source Source
	// Set is the override set name; empty for SourceBase.
	Set string
	// Kind and Region describe the frame for SourceFrame.
	Kind   ScopeKind
	Region string
	// Owner is the type carrying the sticky set (SourceSticky) or the
	// type defining the base method (SourceBase).
	Owner TypeRef
	// Target is the overridden key's type for override sources.
	Target TypeRef
}

func (r Resolution) String() string {
	switch r.Source {
	case SourceFrame:
		return fmt.Sprintf("%s (%s %s)", r.Set, r.Kind, r.Region)
	case SourceSticky:
		return fmt.Sprintf("%s (sticky on %s)", r.Set, r.Owner)
	case SourceBase:
		return fmt.Sprintf("base %s", r.Owner)
	}

	return r.Source.String()
}

type candidate struct {
	impl       Implementation
	set        *OverrideSet
	scope      *CapturedScope
	resolution Resolution
}

// Resolver dispatches method calls through active overrides.
type Resolver struct {
	types  TypeSystem
	base   BaseDispatcher
	sticky *stickyRegistry
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a resolver backed by the host's type system and base
// dispatch table. The resolver owns the sticky attachment registry, so
// every ActivationManager built on it shares those attachments.
func NewResolver(types TypeSystem, base BaseDispatcher, opts ...Option) *Resolver {
	r := &Resolver{
		types:  types,
		base:   base,
		sticky: newStickyRegistry(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Types returns the host type system.
func (r *Resolver) Types() TypeSystem {
	return r.types
}

// Attached returns the sets attached to t, most recent first.
func (r *Resolver) Attached(t TypeRef) []*OverrideSet {
	return r.sticky.attached(t.Name)
}

// Dispatch calls method on receiver using the overrides visible from ctx.
func (r *Resolver) Dispatch(ctx context.Context, receiver Value, method string, args ...Value) (Value, error) {
	ec, err := execContext(ctx)
	if err != nil {
		return nil, err
	}

	d, err := r.prepare(ec, receiver, method)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("dispatch", "receiver", d.receiverType, "method", method, "resolved", d.chain[0].resolution)

	return r.invoke(ctx, ec, d, 0, args)
}

// Resolve reports which implementation Dispatch would run without running it.
func (r *Resolver) Resolve(ctx context.Context, receiver Value, method string) (Resolution, error) {
	ec, err := execContext(ctx)
	if err != nil {
		return Resolution{}, err
	}

	d, err := r.prepare(ec, receiver, method)
	if err != nil {
		return Resolution{}, err
	}

	return d.chain[0].resolution, nil
}

type dispatch struct {
	receiver     Value
	receiverType TypeRef
	method       string
	chain        []candidate
}

func (r *Resolver) prepare(ec *ExecContext, receiver Value, method string) (*dispatch, error) {
	receiverType, ok := r.types.TypeOf(receiver)
	if !ok {
		return nil, &NoMethodError{Receiver: TypeRef{Name: fmt.Sprintf("%T", receiver)}, Method: method}
	}

	chain := r.candidates(ec, receiverType, method)
	if len(chain) == 0 {
		return nil, &NoMethodError{Receiver: receiverType, Method: method}
	}

	return &dispatch{
		receiver:     receiver,
		receiverType: receiverType,
		method:       method,
		chain:        chain,
	}, nil
}

func (r *Resolver) ancestors(t TypeRef) []TypeRef {
	ancestors := r.types.Ancestors(t)
	if len(ancestors) == 0 || ancestors[0] != t {
		ancestors = append([]TypeRef{t}, ancestors...)
	}

	return ancestors
}

// candidates lists every implementation applicable to the call, in the
// order Dispatch and Super consume them. A set appears at most once.
func (r *Resolver) candidates(ec *ExecContext, receiverType TypeRef, method string) []candidate {
	ancestors := r.ancestors(receiverType)
	seen := make(map[*OverrideSet]struct{})

	var chain []candidate

	for _, frame := range ec.stack.TopDown() {
		if _, dup := seen[frame.Set]; dup {
			continue
		}

		seen[frame.Set] = struct{}{}

		if impl, target, ok := lookupAlong(frame.Set, ancestors, method); ok {
			chain = append(chain, candidate{
				impl: impl,
				set:  frame.Set,
				resolution: Resolution{
					Source: SourceFrame,
					Set:    frame.Set.Name(),
					Kind:   frame.Kind,
					Region: frame.Region,
					Target: target,
				},
			})
		}
	}

	for _, owner := range ancestors {
		for _, set := range r.sticky.attached(owner.Name) {
			if _, dup := seen[set]; dup {
				continue
			}

			seen[set] = struct{}{}

			if impl, target, ok := lookupAlong(set, ancestors, method); ok {
				chain = append(chain, candidate{
					impl: impl,
					set:  set,
					resolution: Resolution{
						Source: SourceSticky,
						Set:    set.Name(),
						Owner:  owner,
						Target: target,
					},
				})
			}
		}
	}

	if base, ok := r.base.LookupBase(receiverType, method); ok && base.Impl != nil {
		chain = append(chain, candidate{
			impl:  base.Impl,
			scope: base.Scope,
			resolution: Resolution{
				Source: SourceBase,
				Owner:  base.Owner,
			},
		})
	}

	return chain
}

// lookupAlong queries set for method on each ancestor, most specific first.
func lookupAlong(set *OverrideSet, ancestors []TypeRef, method string) (Implementation, TypeRef, bool) {
	for _, t := range ancestors {
		if impl, ok := set.Lookup(t, method); ok {
			return impl, t, true
		}
	}

	return nil, TypeRef{}, false
}

// invoke runs chain[index]. The body runs behind a barrier so it does not
// see the caller's frames; overrides additionally see their own set and
// base methods see the scope they were defined in. While the body runs no
// enclosing region is innermost, so none of them can activate.
func (r *Resolver) invoke(ctx context.Context, ec *ExecContext, d *dispatch, index int, args []Value) (Value, error) {
	c := d.chain[index]
	stack := ec.stack

	ec.enterBody()
	defer ec.exitBody()

	stack.PushBarrier()

	pushed := 0
	if c.set != nil {
		stack.Push(Frame{Set: c.set, Kind: ScopeMethod, Region: d.method})
		pushed = 1
	} else {
		pushed = pushCaptured(stack, c.scope)
	}

	defer func() {
		for range pushed {
			if _, err := stack.Pop(); err != nil {
				panic(err)
			}
		}

		if err := stack.PopBarrier(); err != nil {
			panic(err)
		}
	}()

	return c.impl(&Call{
		ctx:      ctx,
		ec:       ec,
		resolver: r,
		dispatch: d,
		index:    index,
		Receiver: d.receiver,
		Args:     args,
	})
}
