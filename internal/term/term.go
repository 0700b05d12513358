// Package term implements the algebraic term model of the linear-resolution
// engine: atoms, integers, variables, compounds, and explicit clone wrappers.
// Terms are immutable once constructed; every operation that would "change" a
// term instead produces a new value.
package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is the sum type of everything the engine unifies and resolves over.
// Concrete variants are Atom, Integer, Variable, Compound, and Clone.
type Term interface {
	// String renders the term in canonical syntax: atoms as bare names,
	// integers as decimals, compounds as f(a1, …, an), clones as !t.
	String() string

	// Equal reports structural equality: same variant, same sub-terms.
	// Variables are equal by name. This is not unification.
	Equal(other Term) bool

	isTerm()
}

// Atom is a nullary constant, optionally tagged with a declared type name
// produced by the (external) type-checker.
type Atom struct {
	Name string
	Type string // "" if untyped
}

func NewAtom(name string) Atom { return Atom{Name: name} }

func (a Atom) String() string { return a.Name }

func (a Atom) Equal(other Term) bool {
	o, ok := other.(Atom)
	return ok && o.Name == a.Name
}

func (Atom) isTerm() {}

// Integer is a literal i64 value.
type Integer struct {
	Value int64
}

func NewInteger(v int64) Integer { return Integer{Value: v} }

func (i Integer) String() string { return strconv.FormatInt(i.Value, 10) }

func (i Integer) Equal(other Term) bool {
	o, ok := other.(Integer)
	return ok && o.Value == i.Value
}

func (Integer) isTerm() {}

// Variable is a placeholder. Two variables with the same Name denote the
// same variable within a single clause instance; renaming on clause entry
// (see the resolver) gives every instance globally unique names.
type Variable struct {
	Name string
	Type string // "" if untyped
}

func NewVariable(name string) Variable { return Variable{Name: name} }

func (v Variable) String() string { return "$" + v.Name }

func (v Variable) Equal(other Term) bool {
	o, ok := other.(Variable)
	return ok && o.Name == v.Name
}

func (Variable) isTerm() {}

// Compound is an n-ary constructor. Arity is len(Args).
type Compound struct {
	Functor string
	Args    []Term
}

func NewCompound(functor string, args ...Term) Compound {
	return Compound{Functor: functor, Args: args}
}

func (c Compound) Arity() int { return len(c.Args) }

func (c Compound) String() string {
	if len(c.Args) == 0 {
		return c.Functor
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Functor, strings.Join(parts, ", "))
}

func (c Compound) Equal(other Term) bool {
	o, ok := other.(Compound)
	if !ok || o.Functor != c.Functor || len(o.Args) != len(c.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (Compound) isTerm() {}

// Clone is the explicit persistence marker !t. Matching a Clone consumes
// nothing; it is transparent to unification and opaque to the linearity
// pre-checker (see internal/linearity).
type Clone struct {
	Inner Term
}

func NewClone(inner Term) Clone { return Clone{Inner: inner} }

func (c Clone) String() string { return "!" + c.Inner.String() }

func (c Clone) Equal(other Term) bool {
	o, ok := other.(Clone)
	return ok && c.Inner.Equal(o.Inner)
}

func (Clone) isTerm() {}

// Functor returns the functor name and arity used for a term's "signature" —
// an atom has arity 0 and its own name as functor; a compound is itself;
// everything else (Integer, Variable, Clone) has no meaningful functor.
func Functor(t Term) (name string, arity int, ok bool) {
	switch v := t.(type) {
	case Atom:
		return v.Name, 0, true
	case Compound:
		return v.Functor, len(v.Args), true
	default:
		return "", 0, false
	}
}

// Strip removes any number of leading Clone wrappers, returning the
// innermost term and how many layers were peeled.
func Strip(t Term) (Term, int) {
	depth := 0
	for {
		c, ok := t.(Clone)
		if !ok {
			return t, depth
		}
		t = c.Inner
		depth++
	}
}

// Walk calls fn for every variable occurring anywhere in t, including
// variables nested inside Clone wrappers.
func Walk(t Term, fn func(Variable)) {
	switch v := t.(type) {
	case Variable:
		fn(v)
	case Compound:
		for _, a := range v.Args {
			Walk(a, fn)
		}
	case Clone:
		Walk(v.Inner, fn)
	}
}
