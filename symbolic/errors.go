package symbolic

import "errors"

// Sentinel errors for the symbolic package. Callers must branch with
// errors.Is, never by comparing error strings.
var (
	// ErrVarNotFound indicates a RandomVar with no entry in the state.
	ErrVarNotFound = errors.New("symbolic: random variable not found")

	// ErrViolatedAnnotation indicates that a variable annotated
	// ident.AnnotationSymbolic was about to be installed as a sampled Delta.
	// It is always surfaced to the driver unchanged, never recovered from
	// internally.
	ErrViolatedAnnotation = errors.New("symbolic: annotated-symbolic variable would be sampled")

	// ErrAnonymousAnnotation indicates Assume was called with an annotation
	// but no program-visible name to attach it to.
	ErrAnonymousAnnotation = errors.New("symbolic: cannot annotate an anonymous variable")
)
