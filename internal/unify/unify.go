// Package unify implements Robinson unification with mandatory occurs-check
// over the term model in internal/term, per spec §4.3.
package unify

import (
	"github.com/gitrdm/linearkb/internal/subst"
	"github.com/gitrdm/linearkb/internal/term"
)

// Subtyper answers whether an atom whose declared type is variant is a
// (transitive) subtype of parent, so a typed Variable can match a typed
// Atom one or more union levels below it. The clause store implements
// this by walking its cached union_parent closure (§4.5).
type Subtyper interface {
	IsSubtype(variant, parent string) bool
}

// Unifier carries the (optional) type-subtyping oracle used when a
// Variable or Atom in the comparison carries a type tag. A nil Subtyper
// means type tags are ignored (only bare name equality is checked).
type Unifier struct {
	Types Subtyper
}

func New(types Subtyper) *Unifier {
	return &Unifier{Types: types}
}

// Unify attempts to unify t1 and t2 under the bindings already recorded in
// sigma, returning the extended substitution on success. sigma is never
// mutated; on failure the original sigma is returned unchanged and ok is
// false.
func (u *Unifier) Unify(t1, t2 term.Term, sigma *subst.Substitution) (*subst.Substitution, bool) {
	t1 = subst.Apply(sigma, t1)
	t2 = subst.Apply(sigma, t2)

	// Clone is transparent to unification on either side.
	if c1, ok := t1.(term.Clone); ok {
		if c2, ok := t2.(term.Clone); ok {
			return u.Unify(c1.Inner, c2.Inner, sigma)
		}
		return u.Unify(c1.Inner, t2, sigma)
	}
	if c2, ok := t2.(term.Clone); ok {
		return u.Unify(t1, c2.Inner, sigma)
	}

	if v1, ok := t1.(term.Variable); ok {
		if v2, ok := t2.(term.Variable); ok && v1.Name == v2.Name {
			return sigma, true
		}
		return u.bindVar(v1, t2, sigma)
	}
	if v2, ok := t2.(term.Variable); ok {
		return u.bindVar(v2, t1, sigma)
	}

	switch a1 := t1.(type) {
	case term.Atom:
		a2, ok := t2.(term.Atom)
		if !ok {
			return sigma, false
		}
		if a1.Name == a2.Name {
			return sigma, true
		}
		return sigma, false
	case term.Integer:
		i2, ok := t2.(term.Integer)
		return sigma, ok && a1.Value == i2.Value
	case term.Compound:
		c2, ok := t2.(term.Compound)
		if !ok || a1.Functor != c2.Functor || len(a1.Args) != len(c2.Args) {
			return sigma, false
		}
		cur := sigma
		for i := range a1.Args {
			var match bool
			cur, match = u.Unify(a1.Args[i], c2.Args[i], cur)
			if !match {
				return sigma, false
			}
		}
		return cur, true
	default:
		return sigma, false
	}
}

// bindVar binds v to t, honoring a declared type tag on v via the
// Subtyper, and enforcing the occurs-check.
func (u *Unifier) bindVar(v term.Variable, t term.Term, sigma *subst.Substitution) (*subst.Substitution, bool) {
	if v.Type != "" {
		if a, ok := t.(term.Atom); ok {
			if !u.typeAllows(a.Type, v.Type) {
				return sigma, false
			}
		}
	}
	if Occurs(v.Name, t, sigma) {
		return sigma, false
	}
	return sigma.Bind(v.Name, t), true
}

func (u *Unifier) typeAllows(variant, parent string) bool {
	if parent == "" || variant == parent {
		return true
	}
	if u.Types == nil {
		return true
	}
	return u.Types.IsSubtype(variant, parent)
}

// Occurs reports whether the variable named name appears free (after
// applying sigma) anywhere within t, including inside Clone wrappers. An
// infinite term would make subst.Apply non-terminating, so this check is
// mandatory before every binding.
func Occurs(name string, t term.Term, sigma *subst.Substitution) bool {
	t = subst.Apply(sigma, t)
	switch v := t.(type) {
	case term.Variable:
		return v.Name == name
	case term.Compound:
		for _, a := range v.Args {
			if Occurs(name, a, sigma) {
				return true
			}
		}
		return false
	case term.Clone:
		return Occurs(name, v.Inner, sigma)
	default:
		return false
	}
}
