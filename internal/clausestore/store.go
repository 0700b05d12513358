// Package clausestore holds the non-consumable parts of a program: rules,
// persistent facts, and the type/union mapping used to prune unification
// (§4.5). Rules and persistent facts are immutable once the store is built.
package clausestore

import (
	"fmt"

	"github.com/gitrdm/linearkb/internal/subst"
	"github.com/gitrdm/linearkb/internal/term"
	"github.com/gitrdm/linearkb/internal/unify"
)

// Rule is "head :- body" with an optional produces clause. Rules are never
// consumed; produces, when present, is inserted into the ledger as a new
// Available resource once body has been fully resolved (§4.7).
type Rule struct {
	Head     term.Term
	Body     []term.Term
	Produces term.Term // nil if absent
	Pos      Position  // source location, for linearity diagnostics
}

// Position is a source location, reported by the front end (internal/syntax)
// and threaded through diagnostics per spec §7.
type Position struct {
	Line, Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TypeDef declares a union type and its variant names, e.g. "type Animal =
// Dog | Cat | Bird". The type-checker (an external collaborator per spec
// §1) is the normal producer of term_types; TypeDef is how a program
// supplies the union hierarchy that is_subtype walks.
type TypeDef struct {
	Name     string
	Variants []string
}

// Store is the clause store of spec §3: an ordered rule list (resolution
// priority order), a persistent-fact set, and a type map plus union-parent
// mapping for typed unification.
type Store struct {
	Rules           []*Rule
	PersistentFacts []term.Term
	TypeMap         map[string]string // atom-name -> declared type-name
	UnionParent     map[string]string // variant-name -> parent-type-name

	closure map[string][]string // variant -> transitive ancestor chain, cached lazily
}

func New() *Store {
	return &Store{
		TypeMap:     map[string]string{},
		UnionParent: map[string]string{},
	}
}

// AddRule appends a rule, preserving declaration order (resolution
// priority, §4.7 step 3).
func (s *Store) AddRule(r *Rule) {
	s.Rules = append(s.Rules, r)
}

// AddPersistentFact registers a reusable, never-consumed fact.
func (s *Store) AddPersistentFact(t term.Term) {
	s.PersistentFacts = append(s.PersistentFacts, t)
}

// AddTypeDef records a union type and builds the variant -> parent edges
// used by IsSubtype.
func (s *Store) AddTypeDef(td TypeDef) {
	for _, v := range td.Variants {
		s.UnionParent[v] = td.Name
	}
	s.closure = nil // invalidate cache
}

// PersistentMatches returns, in declaration order, every persistent fact
// that unifies with goal under sigma (§4.5). Persistent matches never
// consume anything. rename freshens each fact's own variables per
// attempt, as FindMatching does for linear resources.
func (s *Store) PersistentMatches(goal term.Term, sigma *subst.Substitution, u *unify.Unifier, rename func(term.Term) term.Term) []*subst.Substitution {
	var out []*subst.Substitution
	for _, f := range s.PersistentFacts {
		if s2, ok := u.Unify(rename(f), goal, sigma); ok {
			out = append(out, s2)
		}
	}
	return out
}

// IsSubtype reports whether variant transitively reaches parent through
// UnionParent. The closure is built once on first use and cached (§4.5,
// Design Notes §9); AddTypeDef invalidates the cache.
func (s *Store) IsSubtype(variant, parent string) bool {
	if variant == parent {
		return true
	}
	if s.closure == nil {
		s.closure = map[string][]string{}
	}
	chain, ok := s.closure[variant]
	if !ok {
		chain = s.computeChain(variant)
		s.closure[variant] = chain
	}
	for _, anc := range chain {
		if anc == parent {
			return true
		}
	}
	return false
}

func (s *Store) computeChain(variant string) []string {
	var chain []string
	seen := map[string]bool{variant: true}
	cur := variant
	for {
		next, ok := s.UnionParent[cur]
		if !ok || seen[next] {
			return chain
		}
		chain = append(chain, next)
		seen[next] = true
		cur = next
	}
}
