// Package program defines the in-memory value produced by the front end
// (internal/syntax) and consumed by the query driver, matching the external
// interface of spec §6: type definitions, persistent and linear facts,
// rules, and a sequence of queries.
package program

import (
	"github.com/gitrdm/linearkb/internal/clausestore"
	"github.com/gitrdm/linearkb/internal/term"
)

// Query is one "?- ..." entry. Disjuncts holds one conjunction (a list of
// goals joined by &) per top-level alternative joined by |; a query with a
// single disjunct is an ordinary conjunctive query (Disjunctive is false
// purely as a convenience flag mirroring spec §6's "disjunctive: bool").
type Query struct {
	Disjuncts   [][]term.Term
	Disjunctive bool
	QueryVars   []string // variable names to report bindings for
	Source      string   // original source text, for the "?- ..." report line
	Pos         clausestore.Position
}

// Program is the complete parsed value: everything the clause store and
// ledger are built from, plus the queries to run against them.
type Program struct {
	TypeDefs        []clausestore.TypeDef
	PersistentFacts []term.Term
	LinearFacts     []term.Term
	Rules           []*clausestore.Rule
	Queries         []*Query
	TermTypes       map[string]string // atom-name -> type-name, from the type-checker
}
