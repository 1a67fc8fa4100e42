package refinement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"refine.dev/pkg/refine/pkg/refinement"
)

func counterOverride(impl refinement.Implementation) refinement.Override {
	return refinement.Override{Target: refinement.Type("Counter"), Method: "increment", Impl: impl}
}

func TestDispatch_RegionLocalOverride(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}
	s1 := f.define(t, "S1", counterOverride(valuePlus(2)))

	f.within(t, f.ctx, "R1", []*refinement.OverrideSet{s1}, func(ctx context.Context) {
		assert.Equal(t, 12, f.dispatch(t, ctx, counter, "increment"))
	})

	f.within(t, f.ctx, "R2", nil, func(ctx context.Context) {
		assert.Equal(t, 11, f.dispatch(t, ctx, counter, "increment"))
	})

	assert.Equal(t, 11, f.dispatch(t, f.ctx, counter, "increment"))
	assert.Equal(t, 0, f.ec.Stack().Len())
}

func TestDispatch_NestedRegionsSeeOuterActivation(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}
	s1 := f.define(t, "S1", counterOverride(valuePlus(2)))

	f.within(t, f.ctx, "file", []*refinement.OverrideSet{s1}, func(ctx context.Context) {
		err := f.manager.Run(ctx, refinement.ScopeClass, "class", func(ctx context.Context, _ *refinement.Region) error {
			return f.manager.Run(ctx, refinement.ScopeMethod, "method", func(ctx context.Context, _ *refinement.Region) error {
				assert.Equal(t, 12, f.dispatch(t, ctx, counter, "increment"))
				return nil
			})
		})
		require.NoError(t, err)
	})
}

func TestDispatch_NoLocalRebinding(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}
	s1 := f.define(t, "S1", counterOverride(valuePlus(100)))

	f.within(t, f.ctx, "R1", []*refinement.OverrideSet{s1}, func(ctx context.Context) {
		assert.Equal(t, 110, f.dispatch(t, ctx, counter, "increment"))
		// incrementTwice is a base method; its internal call sees base increment.
		assert.Equal(t, 12, f.dispatch(t, ctx, counter, "incrementTwice"))
	})
}

func TestDispatch_IdempotentActivation(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}
	s := f.define(t, "S", counterOverride(superPlus(10)))

	f.within(t, f.ctx, "R", []*refinement.OverrideSet{s, s}, func(ctx context.Context) {
		assert.Equal(t, 1, f.ec.Stack().Len())
		assert.Equal(t, 21, f.dispatch(t, ctx, counter, "increment"))

		f.within(t, ctx, "inner", []*refinement.OverrideSet{s}, func(ctx context.Context) {
			assert.Equal(t, 21, f.dispatch(t, ctx, counter, "increment"))
		})
	})
}

func TestDispatch_SuperChainsOutward(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}
	outer := f.define(t, "outer", counterOverride(superPlus(10)))
	inner := f.define(t, "inner", counterOverride(superPlus(100)))

	f.within(t, f.ctx, "outer", []*refinement.OverrideSet{outer}, func(ctx context.Context) {
		f.within(t, ctx, "inner", []*refinement.OverrideSet{inner}, func(ctx context.Context) {
			assert.Equal(t, 121, f.dispatch(t, ctx, counter, "increment"))
		})

		assert.Equal(t, 21, f.dispatch(t, ctx, counter, "increment"))
	})
}

func TestDispatch_NoMethod(t *testing.T) {
	h := counterHost().class("Empty", "")
	f := newFixture(h)
	counter := &testObject{typ: "Counter", value: 10}

	t.Run("no override and no base", func(t *testing.T) {
		_, err := f.resolver.Dispatch(f.ctx, counter, "missing")

		var noMethod *refinement.NoMethodError
		require.True(t, errors.As(err, &noMethod))
		assert.False(t, noMethod.Super)
		assert.Equal(t, "missing", noMethod.Method)
	})

	t.Run("receiver of unknown type", func(t *testing.T) {
		_, err := f.resolver.Dispatch(f.ctx, 42, "increment")

		var noMethod *refinement.NoMethodError
		require.True(t, errors.As(err, &noMethod))
	})

	t.Run("super past the base", func(t *testing.T) {
		s := f.define(t, "S", refinement.Override{Target: refinement.Type("Empty"), Method: "m", Impl: superPlus(1)})

		f.within(t, f.ctx, "R", []*refinement.OverrideSet{s}, func(ctx context.Context) {
			_, err := f.resolver.Dispatch(ctx, &testObject{typ: "Empty"}, "m")

			var noMethod *refinement.NoMethodError
			require.True(t, errors.As(err, &noMethod))
			assert.True(t, noMethod.Super)
		})
	})

	t.Run("without execution context", func(t *testing.T) {
		_, err := f.resolver.Dispatch(context.Background(), counter, "increment")
		require.ErrorIs(t, err, refinement.ErrNoExecContext)
	})
}

func TestDispatch_OverrideBodySeesOnlyItsOwnSet(t *testing.T) {
	h := counterHost()
	h.def(refinement.Type("Counter"), "label", constant("base-label"))
	f := newFixture(h)
	counter := &testObject{typ: "Counter", value: 10}

	callLabel := func(call *refinement.Call) (refinement.Value, error) {
		return call.Send(call.Receiver, "label")
	}

	withSibling := f.define(t, "withSibling",
		refinement.Override{Target: refinement.Type("Counter"), Method: "describe", Impl: callLabel},
		refinement.Override{Target: refinement.Type("Counter"), Method: "label", Impl: constant("sibling-label")},
	)
	alone := f.define(t, "alone",
		refinement.Override{Target: refinement.Type("Counter"), Method: "describe", Impl: callLabel},
	)
	callerOnly := f.define(t, "callerOnly",
		refinement.Override{Target: refinement.Type("Counter"), Method: "label", Impl: constant("caller-label")},
	)

	f.within(t, f.ctx, "siblings", []*refinement.OverrideSet{withSibling}, func(ctx context.Context) {
		assert.Equal(t, "sibling-label", f.dispatch(t, ctx, counter, "describe"))
	})

	f.within(t, f.ctx, "caller", []*refinement.OverrideSet{callerOnly, alone}, func(ctx context.Context) {
		assert.Equal(t, "caller-label", f.dispatch(t, ctx, counter, "label"))
		assert.Equal(t, "base-label", f.dispatch(t, ctx, counter, "describe"))
	})
}

func TestDispatch_CallExposesDefiningSet(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}

	s := f.define(t, "named", counterOverride(func(call *refinement.Call) (refinement.Value, error) {
		assert.Equal(t, "increment", call.Method())
		assert.Equal(t, refinement.Type("Counter"), call.ReceiverType())
		assert.True(t, call.HasSuper())

		return call.Set().Name(), nil
	}))

	f.within(t, f.ctx, "R", []*refinement.OverrideSet{s}, func(ctx context.Context) {
		assert.Equal(t, "named", f.dispatch(t, ctx, counter, "increment"))
	})
}

func TestDispatch_ClassLevelNamespace(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}
	class := &testClass{name: "Counter"}

	instanceOnly := f.define(t, "instance", counterOverride(valuePlus(2)))
	classOnly := f.define(t, "class", refinement.Override{
		Target: refinement.MetaOf("Counter"), Method: "increment", Impl: constant("class-override"),
	})

	f.within(t, f.ctx, "instance", []*refinement.OverrideSet{instanceOnly}, func(ctx context.Context) {
		assert.Equal(t, 12, f.dispatch(t, ctx, counter, "increment"))
		assert.Equal(t, "class-level", f.dispatch(t, ctx, class, "increment"))
	})

	f.within(t, f.ctx, "class", []*refinement.OverrideSet{classOnly}, func(ctx context.Context) {
		assert.Equal(t, 11, f.dispatch(t, ctx, counter, "increment"))
		assert.Equal(t, "class-override", f.dispatch(t, ctx, class, "increment"))
	})
}

func TestResolve(t *testing.T) {
	f := newFixture(counterHost())
	counter := &testObject{typ: "Counter", value: 10}
	s1 := f.define(t, "S1", counterOverride(valuePlus(2)))

	f.within(t, f.ctx, "R1", []*refinement.OverrideSet{s1}, func(ctx context.Context) {
		res, err := f.resolver.Resolve(ctx, counter, "increment")
		require.NoError(t, err)
		assert.Equal(t, refinement.SourceFrame, res.Source)
		assert.Equal(t, "S1", res.Set)
		assert.Equal(t, "R1", res.Region)
		assert.Equal(t, refinement.ScopeFile, res.Kind)
		assert.Equal(t, refinement.Type("Counter"), res.Target)
		assert.Equal(t, "S1 (file R1)", res.String())
	})

	res, err := f.resolver.Resolve(f.ctx, counter, "increment")
	require.NoError(t, err)
	assert.Equal(t, refinement.SourceBase, res.Source)
	assert.Equal(t, refinement.Type("Counter"), res.Owner)
	assert.Equal(t, "base Counter", res.String())
}
