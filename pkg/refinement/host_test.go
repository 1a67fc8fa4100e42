package refinement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"refine.dev/pkg/refine/pkg/refinement"
)

type testType struct {
	kind     refinement.TypeKind
	parent   string
	includes []string
}

type testObject struct {
	typ   string
	value int
}

type testClass struct {
	name string
}

// testHost is a minimal host: single inheritance plus mixins, base methods
// keyed by (type, method).
type testHost struct {
	types   map[string]testType
	methods map[refinement.Key]refinement.BaseMethod
}

func newTestHost() *testHost {
	return &testHost{
		types:   map[string]testType{},
		methods: map[refinement.Key]refinement.BaseMethod{},
	}
}

func (h *testHost) class(name, parent string, includes ...string) *testHost {
	h.types[name] = testType{kind: refinement.KindClass, parent: parent, includes: includes}
	return h
}

func (h *testHost) module(name string) *testHost {
	h.types[name] = testType{kind: refinement.KindModule}
	return h
}

func (h *testHost) def(t refinement.TypeRef, method string, impl refinement.Implementation) *testHost {
	h.methods[refinement.Key{Target: t, Method: method}] = refinement.BaseMethod{Impl: impl, Owner: t}
	return h
}

func (h *testHost) defScoped(t refinement.TypeRef, method string, scope *refinement.CapturedScope, impl refinement.Implementation) *testHost {
	h.methods[refinement.Key{Target: t, Method: method}] = refinement.BaseMethod{Impl: impl, Owner: t, Scope: scope}
	return h
}

func (h *testHost) TypeOf(receiver refinement.Value) (refinement.TypeRef, bool) {
	switch r := receiver.(type) {
	case *testObject:
		return refinement.Type(r.typ), true
	case *testClass:
		return refinement.MetaOf(r.name), true
	}

	return refinement.TypeRef{}, false
}

func (h *testHost) Ancestors(t refinement.TypeRef) []refinement.TypeRef {
	var out []refinement.TypeRef

	for name := t.Name; name != ""; {
		tt, ok := h.types[name]
		if !ok {
			break
		}

		out = append(out, refinement.TypeRef{Name: name, Meta: t.Meta})

		if !t.Meta {
			for i := len(tt.includes) - 1; i >= 0; i-- {
				out = append(out, refinement.Type(tt.includes[i]))
			}
		}

		name = tt.parent
	}

	return out
}

func (h *testHost) KindOf(t refinement.TypeRef) refinement.TypeKind {
	tt, ok := h.types[t.Name]
	if !ok {
		return refinement.KindUnknown
	}

	if t.Meta {
		return refinement.KindClass
	}

	return tt.kind
}

func (h *testHost) LookupBase(t refinement.TypeRef, method string) (refinement.BaseMethod, bool) {
	for _, a := range h.Ancestors(t) {
		if bm, ok := h.methods[refinement.Key{Target: a, Method: method}]; ok {
			return bm, true
		}
	}

	return refinement.BaseMethod{}, false
}

func constant(v refinement.Value) refinement.Implementation {
	return func(*refinement.Call) (refinement.Value, error) {
		return v, nil
	}
}

func superPlus(n int) refinement.Implementation {
	return func(call *refinement.Call) (refinement.Value, error) {
		v, err := call.Super(call.Args...)
		if err != nil {
			return nil, err
		}

		return v.(int) + n, nil
	}
}

func valuePlus(n int) refinement.Implementation {
	return func(call *refinement.Call) (refinement.Value, error) {
		return call.Receiver.(*testObject).value + n, nil
	}
}

// counterHost models Counter#increment (value+1) and
// Counter#incrementTwice, which calls increment on itself.
func counterHost() *testHost {
	h := newTestHost().class("Counter", "")
	h.def(refinement.Type("Counter"), "increment", valuePlus(1))
	h.def(refinement.Type("Counter"), "incrementTwice", func(call *refinement.Call) (refinement.Value, error) {
		v, err := call.Send(call.Receiver, "increment")
		if err != nil {
			return nil, err
		}

		return v.(int) + 1, nil
	})
	h.def(refinement.MetaOf("Counter"), "increment", constant("class-level"))

	return h
}

type fixture struct {
	host     *testHost
	resolver *refinement.Resolver
	manager  *refinement.ActivationManager
	ctx      context.Context
	ec       *refinement.ExecContext
}

func newFixture(h *testHost) *fixture {
	resolver := refinement.NewResolver(h, h)
	ec := refinement.NewExecContext()

	return &fixture{
		host:     h,
		resolver: resolver,
		manager:  refinement.NewActivationManager(resolver),
		ctx:      refinement.WithExecContext(context.Background(), ec),
		ec:       ec,
	}
}

func (f *fixture) define(t *testing.T, name string, overrides ...refinement.Override) *refinement.OverrideSet {
	t.Helper()

	set, err := refinement.Define(f.host, name, overrides...)
	require.NoError(t, err)

	return set
}

func (f *fixture) dispatch(t *testing.T, ctx context.Context, receiver refinement.Value, method string, args ...refinement.Value) refinement.Value {
	t.Helper()

	v, err := f.resolver.Dispatch(ctx, receiver, method, args...)
	require.NoError(t, err)

	return v
}

// within runs fn in a fresh region that activates sets.
func (f *fixture) within(t *testing.T, ctx context.Context, name string, sets []*refinement.OverrideSet, fn func(context.Context)) {
	t.Helper()

	err := f.manager.Run(ctx, refinement.ScopeFile, name, func(ctx context.Context, r *refinement.Region) error {
		for _, s := range sets {
			require.NoError(t, r.Activate(s))
		}

		fn(ctx)

		return nil
	})
	require.NoError(t, err)
}
