package driver

import (
	"context"
	"testing"

	"github.com/gitrdm/linearkb/internal/clausestore"
	"github.com/gitrdm/linearkb/internal/program"
	"github.com/gitrdm/linearkb/internal/term"
)

func TestBuildRejectsUnconsumedVariable(t *testing.T) {
	p := &program.Program{
		Rules: []*clausestore.Rule{{
			Head: term.NewCompound("p", term.NewVariable("X")),
			Body: []term.Term{term.NewCompound("q", term.NewVariable("Y"))},
		}},
	}
	d, errs := Build(p, Config{})
	if d != nil {
		t.Error("expected a nil Driver when linearity checking fails")
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 linearity error, got %d: %v", len(errs), errs)
	}
}

// TestRunAllIsolatesQueries covers spec §8 property 12: consuming a linear
// fact in one query must not affect a later, independent query.
func TestRunAllIsolatesQueries(t *testing.T) {
	p := &program.Program{
		LinearFacts: []term.Term{term.NewAtom("coin")},
		Queries: []*program.Query{
			{Disjuncts: [][]term.Term{{term.NewAtom("coin")}}, Source: "coin"},
			{Disjuncts: [][]term.Term{{term.NewAtom("coin")}}, Source: "coin"},
		},
	}
	d, errs := Build(p, Config{})
	if len(errs) != 0 {
		t.Fatalf("unexpected linearity errors: %v", errs)
	}

	reports := d.RunAll(context.Background(), p.Queries)
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	for i, rep := range reports {
		if len(rep.Solutions) != 1 {
			t.Errorf("report %d: expected 1 solution (query isolation), got %d", i, len(rep.Solutions))
		}
	}
}

func TestRunAllHonorsSolutionCap(t *testing.T) {
	p := &program.Program{
		PersistentFacts: []term.Term{term.NewAtom("a"), term.NewAtom("b"), term.NewAtom("c")},
		Queries: []*program.Query{
			{Disjuncts: [][]term.Term{{term.NewVariable("X")}}, QueryVars: []string{"X"}, Source: "$X"},
		},
	}
	d, errs := Build(p, Config{MaxSolutions: 2})
	if len(errs) != 0 {
		t.Fatalf("unexpected linearity errors: %v", errs)
	}

	reports := d.RunAll(context.Background(), p.Queries)
	rep := reports[0]
	if len(rep.Solutions) != 2 {
		t.Fatalf("expected 2 solutions under cap, got %d", len(rep.Solutions))
	}
	if !rep.Aborted {
		t.Error("expected Aborted = true when the cap is hit")
	}
}

// TestRunAllDisjunctiveQueryUnionsAlternatives covers the union-of-disjuncts
// behavior described in spec §4.7's last line.
func TestRunAllDisjunctiveQueryUnionsAlternatives(t *testing.T) {
	p := &program.Program{
		LinearFacts: []term.Term{term.NewAtom("red"), term.NewAtom("blue")},
		Queries: []*program.Query{
			{
				Disjuncts:   [][]term.Term{{term.NewAtom("red")}, {term.NewAtom("blue")}},
				Disjunctive: true,
				Source:      "red | blue",
			},
		},
	}
	d, errs := Build(p, Config{})
	if len(errs) != 0 {
		t.Fatalf("unexpected linearity errors: %v", errs)
	}

	reports := d.RunAll(context.Background(), p.Queries)
	if len(reports[0].Solutions) != 2 {
		t.Fatalf("expected 2 solutions (one per disjunct), got %d", len(reports[0].Solutions))
	}
}
