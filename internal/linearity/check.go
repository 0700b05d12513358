// Package linearity implements the pre-pass linearity checker (§4.6): for
// every rule, it proves that each variable introduced by the head is
// consumed somewhere in the body, and that no head variable is consumed
// twice outside a Clone. The checker runs
// once per program, before resolution; its failures are fatal (spec §7).
package linearity

import (
	"fmt"

	"github.com/gitrdm/linearkb/internal/clausestore"
	"github.com/gitrdm/linearkb/internal/term"
)

// UnconsumedVariableError is raised when a head variable never appears
// anywhere in the rule's body.
type UnconsumedVariableError struct {
	Variable string
	Rule     string
	Pos      clausestore.Position
}

func (e *UnconsumedVariableError) Error() string {
	return fmt.Sprintf("%s: variable $%s in head of rule %q is never consumed by its body", e.Pos, e.Variable, e.Rule)
}

// MultipleUseWithoutCloneError is raised when a head (or produces) variable
// appears outside a Clone in more than one body position: unifying it
// against two distinct linear resources would silently double-consume, so
// the rule must mark all but one occurrence with a Clone. Variables that
// occur only in the body, such as the $Y joining parent($X, $Y) and
// parent($Y, $Z), are not subject to this check.
type MultipleUseWithoutCloneError struct {
	Variable  string
	Rule      string
	FirstUse  int // body index of the first non-Clone occurrence
	SecondUse int // body index of the second
	Pos       clausestore.Position
}

func (e *MultipleUseWithoutCloneError) Error() string {
	return fmt.Sprintf("%s: variable $%s in rule %q is consumed without !clone at body positions %d and %d",
		e.Pos, e.Variable, e.Rule, e.FirstUse, e.SecondUse)
}

// Check runs the pre-checker over every rule in store and returns all
// violations found (not just the first), so a program with several broken
// rules gets a single diagnostic pass.
func Check(store *clausestore.Store) []error {
	var errs []error
	for _, rule := range store.Rules {
		errs = append(errs, checkRule(rule)...)
	}
	return errs
}

// Rule is an alias kept local to avoid importing clausestore twice in
// signatures below; it is exactly *clausestore.Rule.
type Rule = clausestore.Rule

func checkRule(rule *Rule) []error {
	var errs []error

	headVars := map[string]bool{}
	term.Walk(rule.Head, func(v term.Variable) { headVars[v.Name] = true })
	if rule.Produces != nil {
		term.Walk(rule.Produces, func(v term.Variable) { headVars[v.Name] = true })
	}

	consumed := map[string]bool{}
	// firstNonCloneUse records, per variable, the body index of its first
	// occurrence outside a Clone wrapper.
	firstNonCloneUse := map[string]int{}
	reportedDup := map[string]bool{}

	name := ruleName(rule.Head)

	for i, goal := range rule.Body {
		// Every occurrence anywhere in the body counts toward consumption,
		// including inside a Clone: a clone-use satisfies the resource
		// discipline since that discipline binds facts, not variables
		// (§4.6 point 2).
		term.Walk(goal, func(v term.Variable) { consumed[v.Name] = true })

		// Non-Clone occurrences of head variables are tracked separately to
		// catch accidental duplicate consumption (§4.6 point 4).
		walkNonClone(goal, func(v term.Variable) {
			if !headVars[v.Name] {
				return
			}
			if prev, ok := firstNonCloneUse[v.Name]; ok {
				if prev != i && !reportedDup[v.Name] {
					reportedDup[v.Name] = true
					errs = append(errs, &MultipleUseWithoutCloneError{
						Variable:  v.Name,
						Rule:      name,
						FirstUse:  prev,
						SecondUse: i,
						Pos:       rule.Pos,
					})
				}
				return
			}
			firstNonCloneUse[v.Name] = i
		})
	}

	for v := range headVars {
		if !consumed[v] {
			errs = append(errs, &UnconsumedVariableError{Variable: v, Rule: name, Pos: rule.Pos})
		}
	}

	return errs
}

// walkNonClone calls fn for every variable occurring outside any Clone
// wrapper in t.
func walkNonClone(t term.Term, fn func(term.Variable)) {
	switch v := t.(type) {
	case term.Variable:
		fn(v)
	case term.Compound:
		for _, a := range v.Args {
			walkNonClone(a, fn)
		}
	case term.Clone:
		// opaque: do not descend
	}
}

func ruleName(head term.Term) string {
	if n, _, ok := term.Functor(head); ok {
		return n
	}
	return head.String()
}
