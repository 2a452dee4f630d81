package symbolic

import (
	"fmt"

	"github.com/siren-lang/siren/ident"
)

// Context is the interpreter's variable environment, threading
// program-visible names to the symbolic expressions bound to them. The
// symbolic state machine itself never interprets a program; it only needs
// Context to compute liveness roots for Clean.
type Context struct {
	bindings map[ident.Identifier]SymExpr
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{bindings: make(map[ident.Identifier]SymExpr)}
}

// Get returns the expression bound to name and whether it was present.
func (c *Context) Get(name ident.Identifier) (SymExpr, bool) {
	e, ok := c.bindings[name]
	return e, ok
}

// Set binds name to expr.
func (c *Context) Set(name ident.Identifier, expr SymExpr) {
	c.bindings[name] = expr
}

// Len reports the number of bindings.
func (c *Context) Len() int { return len(c.bindings) }

// Values returns every bound expression, order-independent (used only to
// compute the liveness root set for Clean).
func (c *Context) Values() []SymExpr {
	out := make([]SymExpr, 0, len(c.bindings))
	for _, e := range c.bindings {
		out = append(out, e)
	}

	return out
}

// Clone returns a shallow copy: new backing map, same bound expressions
// (SymExpr values are immutable once built).
func (c *Context) Clone() *Context {
	out := NewContext()
	for k, v := range c.bindings {
		out.bindings[k] = v
	}

	return out
}

// TempVar returns the first Identifier of the form "name_0", "name_1", ...
// not already bound — used by an interpreter to name an intermediate result.
func (c *Context) TempVar(name string) ident.Identifier {
	for i := 0; ; i++ {
		candidate := ident.NewIdentifier(fmt.Sprintf("%s_%d", name, i))
		if _, ok := c.bindings[candidate]; !ok {
			return candidate
		}
	}
}

func (c *Context) String() string {
	return fmt.Sprintf("Context(%d bindings)", len(c.bindings))
}
