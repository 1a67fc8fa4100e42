package domain

import (
	"fmt"
	"slices"
	"sync"

	m "refine.dev/pkg/refine/internal/model"
	"refine.dev/pkg/refine/pkg/refinement"
)

// Object is a scenario instance.
type Object struct {
	Name   string
	Class  string
	Fields map[string]any
}

func (o *Object) String() string {
	return o.Name
}

// ClassObject is the receiver for class-level dispatch.
type ClassObject struct {
	Name string
}

func (c *ClassObject) String() string {
	return c.Name
}

type worldMethod struct {
	body  m.Expr
	scope *refinement.CapturedScope
}

type typeEntry struct {
	name         string
	kind         m.TypeKind
	parent       string
	includes     []string
	methods      map[string]worldMethod
	classMethods map[string]worldMethod
}

// World is the scenario host: it implements refinement.Host over the
// declared types and evaluates method bodies. Methods may be added while
// scripts run, so the tables are guarded.
type World struct {
	mu      sync.RWMutex
	types   map[string]*typeEntry
	objects map[string]*Object
}

var _ refinement.Host = (*World)(nil)

// NewWorld builds the object model declared by scenario.
func NewWorld(scenario m.Scenario) (*World, error) {
	w := &World{
		types:   make(map[string]*typeEntry, len(scenario.Types)),
		objects: make(map[string]*Object, len(scenario.Objects)),
	}

	for _, decl := range scenario.Types {
		if err := w.declareType(decl); err != nil {
			return nil, err
		}
	}

	if err := w.validateHierarchy(); err != nil {
		return nil, err
	}

	for _, decl := range scenario.Objects {
		if err := w.declareObject(decl); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *World) declareType(decl m.TypeDecl) error {
	if decl.Name == "" {
		return fmt.Errorf("%w: type without a name", ErrInvalidScenario)
	}

	if _, dup := w.types[decl.Name]; dup {
		return fmt.Errorf("%w: type %q declared twice", ErrInvalidScenario, decl.Name)
	}

	kind := decl.Kind
	if kind == "" {
		kind = m.KindClass
	}

	if kind != m.KindClass && kind != m.KindModule {
		return fmt.Errorf("%w: type %q has unknown kind %q", ErrInvalidScenario, decl.Name, kind)
	}

	if kind == m.KindModule && decl.Parent != "" {
		return fmt.Errorf("%w: module %q cannot have a parent", ErrInvalidScenario, decl.Name)
	}

	entry := &typeEntry{
		name:         decl.Name,
		kind:         kind,
		parent:       decl.Parent,
		includes:     slices.Clone(decl.Includes),
		methods:      make(map[string]worldMethod, len(decl.Methods)),
		classMethods: make(map[string]worldMethod, len(decl.ClassMethods)),
	}

	for name, body := range decl.Methods {
		entry.methods[name] = worldMethod{body: body}
	}

	for name, body := range decl.ClassMethods {
		entry.classMethods[name] = worldMethod{body: body}
	}

	w.types[decl.Name] = entry

	return nil
}

func (w *World) validateHierarchy() error {
	for _, entry := range w.types {
		if entry.parent != "" {
			parent, ok := w.types[entry.parent]
			if !ok {
				return fmt.Errorf("%w: %q has parent %q: %w", ErrInvalidScenario, entry.name, entry.parent, ErrUnknownType)
			}

			if parent.kind != m.KindClass {
				return fmt.Errorf("%w: %q cannot inherit from module %q", ErrInvalidScenario, entry.name, entry.parent)
			}
		}

		for _, inc := range entry.includes {
			mod, ok := w.types[inc]
			if !ok {
				return fmt.Errorf("%w: %q includes %q: %w", ErrInvalidScenario, entry.name, inc, ErrUnknownType)
			}

			if mod.kind != m.KindModule {
				return fmt.Errorf("%w: %q includes class %q", ErrInvalidScenario, entry.name, inc)
			}
		}

		seen := map[string]bool{}
		for cur := entry; cur != nil; cur = w.types[cur.parent] {
			if seen[cur.name] {
				return fmt.Errorf("%w: inheritance cycle through %q", ErrInvalidScenario, cur.name)
			}

			seen[cur.name] = true
		}
	}

	return nil
}

func (w *World) declareObject(decl m.ObjectDecl) error {
	if decl.Name == "" || decl.Name == "self" {
		return fmt.Errorf("%w: invalid object name %q", ErrInvalidScenario, decl.Name)
	}

	if _, dup := w.objects[decl.Name]; dup {
		return fmt.Errorf("%w: object %q declared twice", ErrInvalidScenario, decl.Name)
	}

	entry, ok := w.types[decl.Type]
	if !ok {
		return fmt.Errorf("%w: object %q of type %q: %w", ErrInvalidScenario, decl.Name, decl.Type, ErrUnknownType)
	}

	if entry.kind != m.KindClass {
		return fmt.Errorf("%w: object %q cannot be an instance of module %q", ErrInvalidScenario, decl.Name, decl.Type)
	}

	fields := make(map[string]any, len(decl.Fields))
	for k, v := range decl.Fields {
		fields[k] = v
	}

	w.objects[decl.Name] = &Object{Name: decl.Name, Class: decl.Type, Fields: fields}

	return nil
}

// Object returns the named instance.
func (w *World) Object(name string) (*Object, error) {
	obj, ok := w.objects[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownObject)
	}

	return obj, nil
}

// Class returns the class object for name.
func (w *World) Class(name string) (*ClassObject, error) {
	w.mu.RLock()
	_, ok := w.types[name]
	w.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownType)
	}

	return &ClassObject{Name: name}, nil
}

// AddMethods adds or replaces methods on a type. scope is the region the
// methods are defined in.
func (w *World) AddMethods(t refinement.TypeRef, methods map[string]m.Expr, scope *refinement.CapturedScope) error {
	if len(methods) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.types[t.Name]
	if !ok {
		return fmt.Errorf("%q: %w", t.Name, ErrUnknownType)
	}

	table := entry.methods
	if t.Meta {
		table = entry.classMethods
	}

	for name, body := range methods {
		table[name] = worldMethod{body: body, scope: scope}
	}

	return nil
}

// TypeOf implements refinement.TypeSystem.
func (w *World) TypeOf(receiver refinement.Value) (refinement.TypeRef, bool) {
	switch r := receiver.(type) {
	case *Object:
		return refinement.Type(r.Class), true
	case *ClassObject:
		return refinement.MetaOf(r.Name), true
	}

	return refinement.TypeRef{}, false
}

// Ancestors implements refinement.TypeSystem. A class is followed by the
// modules it includes (last included first), then by its parent's
// ancestors. The class-level side follows the parent chain only.
func (w *World) Ancestors(t refinement.TypeRef) []refinement.TypeRef {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []refinement.TypeRef

	seen := map[refinement.TypeRef]bool{}
	add := func(ref refinement.TypeRef) {
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}

	for name := t.Name; name != ""; {
		entry, ok := w.types[name]
		if !ok {
			break
		}

		add(refinement.TypeRef{Name: name, Meta: t.Meta})

		if !t.Meta {
			for i := len(entry.includes) - 1; i >= 0; i-- {
				add(refinement.Type(entry.includes[i]))
			}
		}

		name = entry.parent
	}

	return out
}

// KindOf implements refinement.TypeSystem. Class-level namespaces are
// always dispatch-bearing.
func (w *World) KindOf(t refinement.TypeRef) refinement.TypeKind {
	w.mu.RLock()
	entry, ok := w.types[t.Name]
	w.mu.RUnlock()

	switch {
	case !ok:
		return refinement.KindUnknown
	case t.Meta || entry.kind == m.KindClass:
		return refinement.KindClass
	default:
		return refinement.KindModule
	}
}

// LookupBase implements refinement.BaseDispatcher.
func (w *World) LookupBase(t refinement.TypeRef, method string) (refinement.BaseMethod, bool) {
	for _, owner := range w.Ancestors(t) {
		w.mu.RLock()
		entry := w.types[owner.Name]

		table := entry.methods
		if owner.Meta {
			table = entry.classMethods
		}

		def, ok := table[method]
		w.mu.RUnlock()

		if ok {
			return refinement.BaseMethod{
				Impl:  w.Implementation(def.body),
				Owner: owner,
				Scope: def.scope,
			}, true
		}
	}

	return refinement.BaseMethod{}, false
}
