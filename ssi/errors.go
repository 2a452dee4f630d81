package ssi

import (
	"errors"
	"fmt"

	"github.com/siren-lang/siren/symbolic"
)

// errNonConjugate is the sentinel a *nonConjugateError matches under
// errors.Is; the value actually flowing through hoist is always a
// *nonConjugateError, which additionally names the blocking parent so graft
// (which unwraps it with errors.As) knows what to force.
var errNonConjugate = errors.New("ssi: no conjugate rule applies")

// nonConjugateError names the direct ancestor hoist could not swap past:
// no rule in symbolic.Rules applies to (blocking, child). graft recovers by
// forcing blocking directly and retrying the whole hoist.
type nonConjugateError struct {
	blocking symbolic.RandomVar
}

func (e *nonConjugateError) Error() string {
	return fmt.Sprintf("ssi: no conjugate rule applies to parent %s", e.blocking.ID)
}

func (e *nonConjugateError) Is(target error) bool { return target == errNonConjugate }

// errCannotSwap indicates a structural precondition of hoist failed: topoSort
// says a parent must be eliminated, but canSwap rejects the pairing. Unlike
// errNonConjugate this is never recovered from — it signals a DAG shape the
// hoist algorithm cannot handle at all.
var errCannotSwap = errors.New("ssi: cannot swap parent and child")
