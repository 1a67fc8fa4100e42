package refinement

import (
	"fmt"
	"strings"
)

// Value is any value flowing through dispatch.
type Value = any

// TypeRef names a dispatch-bearing type. Meta selects the class-level
// namespace of Name, which is distinct from its instance methods.
type TypeRef struct {
	Name string
	Meta bool
}

// Type returns the instance-side reference for name.
func Type(name string) TypeRef {
	return TypeRef{Name: name}
}

// MetaOf returns the class-level reference for name.
func MetaOf(name string) TypeRef {
	return TypeRef{Name: name, Meta: true}
}

// Instance returns the instance-side reference of t.
func (t TypeRef) Instance() TypeRef {
	return TypeRef{Name: t.Name}
}

func (t TypeRef) String() string {
	if t.Meta {
		return t.Name + ".class"
	}

	return t.Name
}

// Key identifies one overridable method.
type Key struct {
	Target TypeRef
	Method string
}

func (k Key) String() string {
	if k.Target.Meta {
		return k.Target.Name + "." + k.Method
	}

	return k.Target.Name + "#" + k.Method
}

// TypeKind classifies a type for the purpose of override targeting.
type TypeKind int

const (
	// KindUnknown is returned for types the host does not know.
	KindUnknown TypeKind = iota
	// KindClass is a concrete dispatch-bearing type.
	KindClass
	// KindModule is a grouping of methods (mixin, interface). It can be
	// an ancestor but never an override target.
	KindModule
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	case KindUnknown:
		return "unknown"
	}

	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// ScopeKind records what kind of region pushed a frame.
type ScopeKind int

const (
	// ScopeFile is a whole source unit.
	ScopeFile ScopeKind = iota
	// ScopeModule is a module body or a re-entered module context.
	ScopeModule
	// ScopeClass is a class body, including reopened classes.
	ScopeClass
	// ScopeMethod is a method body.
	ScopeMethod
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "module"
	case ScopeClass:
		return "class"
	case ScopeMethod:
		return "method"
	}

	return fmt.Sprintf("ScopeKind(%d)", int(k))
}

// ParseScopeKind parses the lower-case names produced by ScopeKind.String.
func ParseScopeKind(s string) (ScopeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file", "":
		return ScopeFile, nil
	case "module":
		return ScopeModule, nil
	case "class":
		return ScopeClass, nil
	case "method":
		return ScopeMethod, nil
	}

	return ScopeFile, fmt.Errorf("unknown scope kind %q", s)
}

// TypeSystem is the host's view of its type hierarchy.
type TypeSystem interface {
	// TypeOf reports the dispatch type of receiver.
	TypeOf(receiver Value) (TypeRef, bool)
	// Ancestors returns t followed by its ancestors, most specific first.
	Ancestors(t TypeRef) []TypeRef
	// KindOf classifies t.
	KindOf(t TypeRef) TypeKind
}

// BaseMethod is a host implementation found in the base dispatch table.
type BaseMethod struct {
	Impl  Implementation
	Owner TypeRef
	// Scope, when set, is re-entered while the body runs so that a
	// method defined inside an active region keeps seeing it.
	Scope *CapturedScope
}

// BaseDispatcher is the host's unmodified dispatch table.
type BaseDispatcher interface {
	// LookupBase finds method on t or the nearest ancestor defining it.
	LookupBase(t TypeRef, method string) (BaseMethod, bool)
}

// Host bundles both outbound interfaces.
type Host interface {
	TypeSystem
	BaseDispatcher
}
