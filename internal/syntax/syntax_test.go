package syntax

import (
	"testing"

	"github.com/gitrdm/linearkb/internal/term"
)

// TestParsePlainFactsAndQuery covers spec §8 scenario (a): two linear facts
// and a conjunctive query.
func TestParsePlainFactsAndQuery(t *testing.T) {
	p, err := Parse("a", `
coin.
candy.
?- coin & candy.
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.LinearFacts) != 2 {
		t.Fatalf("expected 2 linear facts, got %d", len(p.LinearFacts))
	}
	if !p.LinearFacts[0].Equal(term.NewAtom("coin")) {
		t.Errorf("first fact = %v, want coin", p.LinearFacts[0])
	}
	if len(p.Queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(p.Queries))
	}
	q := p.Queries[0]
	if len(q.Disjuncts) != 1 || len(q.Disjuncts[0]) != 2 {
		t.Fatalf("expected a single conjunction of 2 goals, got %+v", q.Disjuncts)
	}
	if q.Source != "coin & candy" {
		t.Errorf("Source = %q, want %q", q.Source, "coin & candy")
	}
}

// TestParseRuleWithProduces covers spec §8 scenario (b).
func TestParseRuleWithProduces(t *testing.T) {
	p, err := Parse("b", `!rule: buy :- coin => candy.`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(p.Rules))
	}
	r := p.Rules[0]
	if !r.Head.Equal(term.NewAtom("buy")) {
		t.Errorf("Head = %v, want buy", r.Head)
	}
	if len(r.Body) != 1 || !r.Body[0].Equal(term.NewAtom("coin")) {
		t.Errorf("Body = %v, want [coin]", r.Body)
	}
	if r.Produces == nil || !r.Produces.Equal(term.NewAtom("candy")) {
		t.Errorf("Produces = %v, want candy", r.Produces)
	}
}

// TestParseRuleWithVariablesAndCompounds covers spec §8 scenario (c).
func TestParseRuleWithVariablesAndCompounds(t *testing.T) {
	p, err := Parse("c", `
!rule: grandparent($X, $Z) :- parent($X, $Y), parent($Y, $Z).
?- grandparent(john, $Z).
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(p.Rules))
	}
	r := p.Rules[0]
	want := term.NewCompound("grandparent", term.NewVariable("X"), term.NewVariable("Z"))
	if !r.Head.Equal(want) {
		t.Errorf("Head = %v, want %v", r.Head, want)
	}
	if len(r.Body) != 2 {
		t.Fatalf("expected 2 body goals, got %d", len(r.Body))
	}
	if len(p.Queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(p.Queries))
	}
	if got := p.Queries[0].QueryVars; len(got) != 1 || got[0] != "Z" {
		t.Errorf("QueryVars = %v, want [Z]", got)
	}
}

// TestParsePersistentFactAndPlainFact covers spec §8 scenario (d): a
// persistent fact declaration is distinct from a plain (linear) fact.
func TestParsePersistentFactAndPlainFact(t *testing.T) {
	p, err := Parse("d", `
!fact: fact(shared).
fact(other).
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.PersistentFacts) != 1 {
		t.Fatalf("expected 1 persistent fact, got %d", len(p.PersistentFacts))
	}
	if len(p.LinearFacts) != 1 {
		t.Fatalf("expected 1 linear fact, got %d", len(p.LinearFacts))
	}
	want := term.NewCompound("fact", term.NewAtom("shared"))
	if !p.PersistentFacts[0].Equal(want) {
		t.Errorf("PersistentFacts[0] = %v, want %v", p.PersistentFacts[0], want)
	}
}

// TestParseCloneAndOccursCheckProgram covers spec §8 scenario (e).
func TestParseCloneAndOccursCheckProgram(t *testing.T) {
	p, err := Parse("e", `
!fact: eq($A, $A).
?- eq($X, f($X)).
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := term.NewCompound("eq", term.NewVariable("A"), term.NewVariable("A"))
	if !p.PersistentFacts[0].Equal(want) {
		t.Errorf("PersistentFacts[0] = %v, want %v", p.PersistentFacts[0], want)
	}
}

func TestParseCloneTerm(t *testing.T) {
	p, err := Parse("clone", `!rule: p($X) :- q(!$X).`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r := p.Rules[0]
	want := term.NewCompound("q", term.NewClone(term.NewVariable("X")))
	if !r.Body[0].Equal(want) {
		t.Errorf("Body[0] = %v, want %v", r.Body[0], want)
	}
}

// TestParseDisjunctiveQuery covers spec §8 scenario (f): a query with
// alternatives joined by |.
func TestParseDisjunctiveQuery(t *testing.T) {
	p, err := Parse("f", `
red.
blue.
?- red | blue.
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	q := p.Queries[0]
	if !q.Disjunctive {
		t.Error("expected Disjunctive = true")
	}
	if len(q.Disjuncts) != 2 {
		t.Fatalf("expected 2 disjuncts, got %d", len(q.Disjuncts))
	}
}

func TestParseTypeDecl(t *testing.T) {
	p, err := Parse("types", `type Animal = Dog | Cat | Bird.`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.TypeDefs) != 1 {
		t.Fatalf("expected 1 type decl, got %d", len(p.TypeDefs))
	}
	td := p.TypeDefs[0]
	if td.Name != "Animal" || len(td.Variants) != 3 {
		t.Errorf("TypeDefs[0] = %+v, want Animal with 3 variants", td)
	}
	if p.TermTypes["Dog"] != "Animal" {
		t.Errorf("TermTypes[Dog] = %q, want Animal", p.TermTypes["Dog"])
	}
}

func TestParseTypedAtomAndVariable(t *testing.T) {
	p, err := Parse("typed", `?- p(fido@Dog, $X@Animal).`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	goal := p.Queries[0].Disjuncts[0][0].(term.Compound)
	atom := goal.Args[0].(term.Atom)
	if atom.Name != "fido" || atom.Type != "Dog" {
		t.Errorf("arg0 = %+v, want fido@Dog", atom)
	}
	v := goal.Args[1].(term.Variable)
	if v.Name != "X" || v.Type != "Animal" {
		t.Errorf("arg1 = %+v, want $X@Animal", v)
	}
}

func TestParseTwoArgCompoundFact(t *testing.T) {
	p, err := Parse("g", `parent(john, mary).`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := term.NewCompound("parent", term.NewAtom("john"), term.NewAtom("mary"))
	if !p.LinearFacts[0].Equal(want) {
		t.Errorf("LinearFacts[0] = %v, want %v", p.LinearFacts[0], want)
	}
}

func TestParseErrorOnIncompleteQuery(t *testing.T) {
	_, err := Parse("bad", `?- coin &.`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParseComment(t *testing.T) {
	p, err := Parse("comment", `
// a leading comment
coin. // trailing comment
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.LinearFacts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(p.LinearFacts))
	}
}
