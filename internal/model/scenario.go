// Package model defines the data structures of refine scenarios and reports.
package model

import "gopkg.in/yaml.v3"

// Scenario is one YAML scenario file: a small object model, a batch of
// override sets and a script that activates them and dispatches calls.
type Scenario struct {
	Name      string            `yaml:"name"`
	Types     []TypeDecl        `yaml:"types"`
	Objects   []ObjectDecl      `yaml:"objects"`
	Overrides []OverrideSetDecl `yaml:"overrides"`
	Script    []Step            `yaml:"script"`

	// File is filled in by the loader.
	File File `yaml:"-"`
}

// TypeKind is the declared kind of a type.
type TypeKind string

const (
	// KindClass declares a concrete type that instances can have.
	KindClass TypeKind = "class"
	// KindModule declares a method grouping that classes include.
	KindModule TypeKind = "module"
)

// TypeDecl declares a class or module.
type TypeDecl struct {
	Name         string          `yaml:"name"`
	Kind         TypeKind        `yaml:"kind"`
	Parent       string          `yaml:"parent"`
	Includes     []string        `yaml:"includes"`
	Methods      map[string]Expr `yaml:"methods"`
	ClassMethods map[string]Expr `yaml:"class_methods"`
}

// ObjectDecl declares a named instance.
type ObjectDecl struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Fields map[string]any `yaml:"fields"`
}

// OverrideSetDecl declares one override set. ExpectError asserts that the
// definition itself is rejected.
type OverrideSetDecl struct {
	Name        string       `yaml:"name"`
	Targets     []TargetDecl `yaml:"targets"`
	ExpectError string       `yaml:"expect_error"`
}

// TargetDecl groups the overrides of one type. Meta targets the
// class-level namespace.
type TargetDecl struct {
	Type    string          `yaml:"type"`
	Meta    bool            `yaml:"meta"`
	Methods map[string]Expr `yaml:"methods"`
}

// Expr is a method body. Exactly one field is expected to be set; an
// expression with none of them set evaluates to Lit. A plain YAML scalar
// is shorthand for a literal.
type Expr struct {
	Lit    any        `yaml:"lit"`
	Field  string     `yaml:"field"`
	Arg    *int       `yaml:"arg"`
	Self   bool       `yaml:"self"`
	Class  bool       `yaml:"class"`
	Object string     `yaml:"object"`
	Add    []Expr     `yaml:"add"`
	Concat []Expr     `yaml:"concat"`
	Send   *SendExpr  `yaml:"send"`
	Super  *SuperExpr `yaml:"super"`
}

// UnmarshalYAML accepts a bare scalar or sequence as a literal.
func (e *Expr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return node.Decode(&e.Lit)
	}

	type plain Expr

	return node.Decode((*plain)(e))
}

// SendExpr dispatches a call. To names an object; empty or "self" means
// the receiver. Class names a class object instead.
type SendExpr struct {
	To     string `yaml:"to"`
	Class  string `yaml:"class"`
	Method string `yaml:"method"`
	Args   []Expr `yaml:"args"`
}

// SuperExpr calls the shadowed implementation. Without Args the current
// arguments are passed through.
type SuperExpr struct {
	Args []Expr `yaml:"args"`
}

// Step is one script instruction. Exactly one field is expected to be set.
type Step struct {
	Region   *RegionStep   `yaml:"region"`
	Define   *DefineStep   `yaml:"define"`
	Reenter  *ReenterStep  `yaml:"reenter"`
	Capture  *CaptureStep  `yaml:"capture"`
	Parallel [][]Step      `yaml:"parallel"`
	Dispatch *DispatchStep `yaml:"dispatch"`
}

// RegionStep opens an activation region.
type RegionStep struct {
	Kind  string   `yaml:"kind"`
	Name  string   `yaml:"name"`
	Using []string `yaml:"using"`
	Do    []Step   `yaml:"do"`
}

// DefineStep opens (or reopens) the defining region of a type. Sets in
// Using stick to the type; Methods and ClassMethods are added to it and
// remember the region's activations.
type DefineStep struct {
	Type         string          `yaml:"type"`
	Using        []string        `yaml:"using"`
	Methods      map[string]Expr `yaml:"methods"`
	ClassMethods map[string]Expr `yaml:"class_methods"`
	Do           []Step          `yaml:"do"`
}

// ReenterStep runs Do inside a type's context or a captured scope.
type ReenterStep struct {
	Type     string `yaml:"type"`
	Captured string `yaml:"captured"`
	Do       []Step `yaml:"do"`
}

// CaptureStep snapshots the current scope under Name.
type CaptureStep struct {
	Name string `yaml:"name"`
}

// DispatchStep calls a method and optionally checks the outcome.
type DispatchStep struct {
	Label       string `yaml:"label"`
	To          string `yaml:"to"`
	Class       string `yaml:"class"`
	Method      string `yaml:"method"`
	Args        []Expr `yaml:"args"`
	Expect      any    `yaml:"expect"`
	ExpectError string `yaml:"expect_error"`
}
