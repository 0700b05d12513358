// Package resolver implements the SLD-style proof search over facts and
// rules: leftmost-goal selection, persistent facts before linear resources
// before rules, full backtracking, and solution enumeration (§4.7).
//
// The search is single-threaded and single-task, per spec §5: there is no
// suspension and no implicit parallelism. Depth-first backtracking is
// expressed as ordinary recursion — the Go call stack plays the role of the
// choice-point stack described in §4.7, with every alternative's ledger
// checkpoint restored as its branch returns.
package resolver

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/linearkb/internal/clausestore"
	"github.com/gitrdm/linearkb/internal/ledger"
	"github.com/gitrdm/linearkb/internal/subst"
	"github.com/gitrdm/linearkb/internal/term"
	"github.com/gitrdm/linearkb/internal/unify"
)

// Solution is a query's substitution restricted to its query variables.
type Solution struct {
	Bindings map[string]term.Term
}

// Options configures one Solve invocation.
type Options struct {
	// MaxSolutions caps the number of solutions collected; 0 means
	// unlimited. The resolver returns after the current success once the
	// cap is reached (§4.7, "cancellation is cooperative").
	MaxSolutions int
}

// Result is the outcome of a Solve call.
type Result struct {
	Solutions []Solution
	Aborted   bool // true if MaxSolutions or ctx cancellation cut the search short
}

// Engine resolves goals against a shared clause store and ledger. A fresh
// Engine should be used per independent resolver invocation if true
// concurrent use is ever needed (Design Notes §9); within this system one
// Engine serves one driver, one query at a time.
type Engine struct {
	Store   *clausestore.Store
	Ledger  *ledger.Ledger
	Unifier *unify.Unifier
	Logger  hclog.Logger

	renameCounter uint64
}

func New(store *clausestore.Store, led *ledger.Ledger, logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Engine{
		Store:   store,
		Ledger:  led,
		Unifier: unify.New(store),
		Logger:  logger.Named("resolver"),
	}
}

// obligationKind distinguishes ordinary goals from the pseudo-goal a rule's
// produces clause leaves behind in the goal stack.
type obligationKind int

const (
	goalObligation obligationKind = iota
	produceObligation
)

type obligation struct {
	kind obligationKind
	term term.Term
}

func goalsOf(goals []term.Term) []obligation {
	out := make([]obligation, len(goals))
	for i, g := range goals {
		out[i] = obligation{kind: goalObligation, term: g}
	}
	return out
}

// Solve runs SLD resolution over goals, collecting every solution (or up
// to opts.MaxSolutions), restricted to the given query variable names.
func (e *Engine) Solve(ctx context.Context, goals []term.Term, queryVars []string, opts Options) Result {
	var res Result
	sigma := subst.Empty()

	e.step(ctx, goalsOf(goals), sigma, opts, &res, queryVars)
	return res
}

// step resolves the leftmost obligation and tries its alternatives in the
// fixed order required for determinism: persistent facts, then linear
// resources by ascending id, then rules by declaration order. It returns
// false to signal the caller should stop trying further alternatives
// (solution cap reached or the context was cancelled).
func (e *Engine) step(ctx context.Context, goals []obligation, sigma *subst.Substitution, opts Options, res *Result, queryVars []string) bool {
	select {
	case <-ctx.Done():
		res.Aborted = true
		return false
	default:
	}

	if len(goals) == 0 {
		res.Solutions = append(res.Solutions, extractSolution(sigma, queryVars))
		e.Logger.Debug("solution found", "count", len(res.Solutions))
		if opts.MaxSolutions > 0 && len(res.Solutions) >= opts.MaxSolutions {
			res.Aborted = true
			return false
		}
		return true
	}

	head := goals[0]
	rest := goals[1:]

	if head.kind == produceObligation {
		e.Ledger.Insert(subst.Apply(sigma, head.term))
		return e.step(ctx, rest, sigma, opts, res, queryVars)
	}

	goal := subst.Apply(sigma, head.term)

	// 1. Persistent facts first; they never consume.
	for _, sigma2 := range e.Store.PersistentMatches(goal, sigma, e.Unifier, e.freshen) {
		if !e.step(ctx, rest, sigma2, opts, res, queryVars) {
			return false
		}
	}

	// 2. Linear resources, in ascending id order.
	cp := e.Ledger.Checkpoint()
	for _, m := range e.Ledger.FindMatching(goal, sigma, e.Unifier, e.freshen) {
		if err := e.Ledger.Consume(m.ID); err != nil {
			// An engine bug: a resource FindMatching just reported
			// Available is no longer Available. This cannot happen in a
			// well-formed derivation (spec §7) since nothing else runs
			// between FindMatching and Consume.
			e.Logger.Error("resource consistency violation", "error", err)
			continue
		}
		cont := e.step(ctx, rest, m.Subst, opts, res, queryVars)
		e.Ledger.Restore(cp)
		if !cont {
			return false
		}
	}

	// 3. Rules, in declaration order, each with freshly renamed variables.
	for _, rule := range e.Store.Rules {
		fresh := e.renameRule(rule)
		sigma2, ok := e.Unifier.Unify(fresh.Head, goal, sigma)
		if !ok {
			continue
		}
		body := goalsOf(fresh.Body)
		if fresh.Produces != nil {
			body = append(body, obligation{kind: produceObligation, term: fresh.Produces})
		}
		newGoals := append(append([]obligation{}, body...), rest...)

		rcp := e.Ledger.Checkpoint()
		cont := e.step(ctx, newGoals, sigma2, opts, res, queryVars)
		e.Ledger.Restore(rcp)
		if !cont {
			return false
		}
	}

	return true
}

func extractSolution(sigma *subst.Substitution, queryVars []string) Solution {
	restricted := subst.Restrict(sigma, queryVars)
	b := make(map[string]term.Term, len(queryVars))
	for _, v := range queryVars {
		b[v], _ = restricted.Lookup(v)
	}
	return Solution{Bindings: b}
}

// renameRule copies rule with every variable replaced by a globally fresh
// name, using a monotonic counter scoped to this Engine (Design Notes §9).
func (e *Engine) renameRule(rule *clausestore.Rule) *clausestore.Rule {
	mapping := map[string]string{}
	rename := func(t term.Term) term.Term {
		return renameTerm(t, mapping, e.nextSuffix)
	}

	fresh := &clausestore.Rule{
		Head: rename(rule.Head),
		Pos:  rule.Pos,
	}
	fresh.Body = make([]term.Term, len(rule.Body))
	for i, g := range rule.Body {
		fresh.Body[i] = rename(g)
	}
	if rule.Produces != nil {
		fresh.Produces = rename(rule.Produces)
	}
	return fresh
}

func (e *Engine) nextSuffix() uint64 {
	e.renameCounter++
	return e.renameCounter
}

// freshen renames every variable in t to a globally fresh name, the same
// way renameRule does for a rule's clause. Facts and linear resources may
// themselves carry variables (e.g. a persistent eq($A,$A)); without this,
// reusing the same variable name across match attempts in one derivation
// would let bindings leak between unrelated attempts through sigma.
func (e *Engine) freshen(t term.Term) term.Term {
	return renameTerm(t, map[string]string{}, e.nextSuffix)
}

func renameTerm(t term.Term, mapping map[string]string, next func() uint64) term.Term {
	switch v := t.(type) {
	case term.Variable:
		fresh, ok := mapping[v.Name]
		if !ok {
			fresh = fmt.Sprintf("%s#%d", v.Name, next())
			mapping[v.Name] = fresh
		}
		return term.Variable{Name: fresh, Type: v.Type}
	case term.Compound:
		args := make([]term.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, mapping, next)
		}
		return term.Compound{Functor: v.Functor, Args: args}
	case term.Clone:
		return term.Clone{Inner: renameTerm(v.Inner, mapping, next)}
	default:
		return t
	}
}
