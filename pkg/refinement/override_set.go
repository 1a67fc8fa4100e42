package refinement

import (
	"fmt"
	"slices"
)

// Implementation is the body of an override or of a base method.
type Implementation func(call *Call) (Value, error)

// Override declares one replacement implementation.
type Override struct {
	Target TypeRef
	Method string
	Impl   Implementation
}

// OverrideSet is an immutable bundle of overrides keyed by (type, method).
type OverrideSet struct {
	name    string
	entries map[Key]Implementation
	keys    []Key
}

// Define builds an OverrideSet from one batch of declarations.
//
// Targets are validated against ts: only KindClass types may be
// overridden. A nil ts skips target validation.
func Define(ts TypeSystem, name string, overrides ...Override) (*OverrideSet, error) {
	set := &OverrideSet{
		name:    name,
		entries: make(map[Key]Implementation, len(overrides)),
		keys:    make([]Key, 0, len(overrides)),
	}

	for _, o := range overrides {
		key := Key{Target: o.Target, Method: o.Method}

		if err := validateTarget(ts, name, o.Target); err != nil {
			return nil, err
		}

		if o.Method == "" {
			return nil, fmt.Errorf("override set %q: empty method name for %s", name, o.Target)
		}

		if o.Impl == nil {
			return nil, fmt.Errorf("override set %q: %s has no implementation", name, key)
		}

		if _, dup := set.entries[key]; dup {
			return nil, &DuplicateOverrideError{Set: name, Key: key}
		}

		set.entries[key] = o.Impl
		set.keys = append(set.keys, key)
	}

	return set, nil
}

func validateTarget(ts TypeSystem, set string, target TypeRef) error {
	if ts == nil {
		return nil
	}

	switch ts.KindOf(target) {
	case KindClass:
		return nil
	case KindModule:
		return &InvalidTargetError{Set: set, Target: target, Reason: "modules group methods and cannot be overridden directly"}
	case KindUnknown:
		return &InvalidTargetError{Set: set, Target: target, Reason: "unknown type"}
	}

	return &InvalidTargetError{Set: set, Target: target, Reason: "unsupported type kind"}
}

// Name returns the name given at definition.
func (s *OverrideSet) Name() string {
	return s.name
}

// Len returns the number of overrides in the set.
func (s *OverrideSet) Len() int {
	return len(s.keys)
}

// Keys returns the overridden keys in declaration order.
func (s *OverrideSet) Keys() []Key {
	return slices.Clone(s.keys)
}

// Lookup returns the override for (target, method), if any.
func (s *OverrideSet) Lookup(target TypeRef, method string) (Implementation, bool) {
	impl, ok := s.entries[Key{Target: target, Method: method}]
	return impl, ok
}

func (s *OverrideSet) String() string {
	return s.name
}
