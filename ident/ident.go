// Package ident defines the small, dependency-free identifiers shared by
// every layer of the symbolic inference core: the program-visible names an
// interpreter binds values to, and the annotations a surface program may
// attach to a random variable to request (or require) symbolic treatment.
package ident

import "fmt"

// Identifier names a variable in the surface program's environment (the
// interpreter's Context, see symbolic.Context). Two Identifiers are equal
// when both Module and Name match; Module is empty for top-level bindings.
type Identifier struct {
	Module string
	Name   string
}

// NewIdentifier builds a top-level Identifier with no module qualifier.
func NewIdentifier(name string) Identifier {
	return Identifier{Name: name}
}

// String renders "module.name", or just "name" when Module is empty.
func (id Identifier) String() string {
	if id.Module == "" {
		return id.Name
	}

	return fmt.Sprintf("%s.%s", id.Module, id.Name)
}

// Annotation is a user-declared requirement on how a random variable must
// ultimately be encoded. AnnotationSymbolic is checked at runtime
// (symbolic.ErrViolatedAnnotation); AnnotationSample is recorded but not
// enforced, and the abstract interpreter does not read annotations.
type Annotation int

const (
	// AnnotationNone means the surface program made no request.
	AnnotationNone Annotation = iota
	// AnnotationSymbolic requires the variable never collapse to a sampled Delta.
	AnnotationSymbolic
	// AnnotationSample requires the variable be sampled eagerly.
	AnnotationSample
)

// String implements fmt.Stringer for diagnostic output.
func (a Annotation) String() string {
	switch a {
	case AnnotationSymbolic:
		return "symbolic"
	case AnnotationSample:
		return "sample"
	default:
		return "none"
	}
}
