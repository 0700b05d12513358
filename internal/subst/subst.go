// Package subst implements the variable-to-term substitution used by
// unification and resolution: apply (a recursive walk of binding chains,
// without path compression), bind, and left-to-right composition.
package subst

import "github.com/gitrdm/linearkb/internal/term"

// Substitution is an immutable variable-name -> term.Term mapping. Every
// mutating operation (Bind, Compose) returns a new value; the receiver is
// left untouched, so a choice-point can hold a Substitution across
// backtracking without fear of it being rewritten out from under it.
type Substitution struct {
	bindings map[string]term.Term
}

// Empty is the substitution with no bindings.
func Empty() *Substitution {
	return &Substitution{bindings: map[string]term.Term{}}
}

// Lookup returns the term bound to name and whether a binding exists.
func (s *Substitution) Lookup(name string) (term.Term, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.bindings[name]
	return t, ok
}

// Len reports the number of bindings, mostly useful for tests.
func (s *Substitution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bindings)
}

// Bind returns a new substitution extending s with name -> t. The caller
// (the unifier) is responsible for the occurs-check; Bind itself only
// refuses the degenerate v -> Variable{v} self-binding.
func (s *Substitution) Bind(name string, t term.Term) *Substitution {
	if v, ok := t.(term.Variable); ok && v.Name == name {
		return s
	}
	out := s.clone()
	out.bindings[name] = t
	return out
}

func (s *Substitution) clone() *Substitution {
	n := make(map[string]term.Term, len(s.bindings)+1)
	for k, v := range s.bindings {
		n[k] = v
	}
	return &Substitution{bindings: n}
}

// Apply walks t, replacing every Variable for which a binding exists with
// the (recursively applied) bound term. Clone wrappers are preserved but
// their inner term is still walked, per §4.1.
func Apply(s *Substitution, t term.Term) term.Term {
	switch v := t.(type) {
	case term.Variable:
		if bound, ok := s.Lookup(v.Name); ok {
			return Apply(s, bound)
		}
		return v
	case term.Compound:
		args := make([]term.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = Apply(s, a)
		}
		return term.Compound{Functor: v.Functor, Args: args}
	case term.Clone:
		return term.Clone{Inner: Apply(s, v.Inner)}
	default:
		return t
	}
}

// Compose produces sigma where sigma(v) = Apply(s2, s1(v)) for v in dom(s1),
// and sigma(v) = s2(v) for v in dom(s2) \ dom(s1). This is the classical
// left-to-right composition applied after unifying a fresh clause into the
// current proof state (§4.2).
func Compose(s1, s2 *Substitution) *Substitution {
	out := Empty()
	if s1 != nil {
		for name, t := range s1.bindings {
			out.bindings[name] = Apply(s2, t)
		}
	}
	if s2 != nil {
		for name, t := range s2.bindings {
			if _, already := out.bindings[name]; !already {
				out.bindings[name] = t
			}
		}
	}
	return out
}

// Restrict returns a new substitution containing only the given names,
// fully applied (so a bound query variable shows its ground or
// partially-ground value, not an intermediate binding chain).
func Restrict(s *Substitution, names []string) *Substitution {
	out := Empty()
	for _, n := range names {
		out.bindings[n] = Apply(s, term.Variable{Name: n})
	}
	return out
}
