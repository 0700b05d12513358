// Package driver implements the query driver of spec §4.8: it builds the
// ledger and clause store from a program, runs the linearity pre-checker,
// then executes each query in isolation — checkpointing the ledger before
// the query and restoring it afterward, so query N+1 always starts from
// the same knowledge-base state as query N did.
package driver

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/linearkb/internal/clausestore"
	"github.com/gitrdm/linearkb/internal/ledger"
	"github.com/gitrdm/linearkb/internal/linearity"
	"github.com/gitrdm/linearkb/internal/program"
	"github.com/gitrdm/linearkb/internal/resolver"
)

// Config bounds a run: MaxSolutions caps solutions per query (0 =
// unlimited) and Budget bounds wall-clock time per query (0 = unbounded),
// per spec §5's cooperative cancellation.
type Config struct {
	MaxSolutions int
	Budget       time.Duration
	Logger       hclog.Logger
}

// QueryReport is one query's outcome: its solutions and whether the search
// was cut short by the solution cap or the wall-clock budget.
type QueryReport struct {
	Query     *program.Query
	Solutions []resolver.Solution
	Aborted   bool
}

// Driver owns the clause store, ledger, and resolver engine built from one
// program.
type Driver struct {
	Store  *clausestore.Store
	Ledger *ledger.Ledger
	Engine *resolver.Engine
	logger hclog.Logger
	cfg    *Config
}

// Build constructs a Driver from a parsed program and runs the linearity
// pre-checker. On linearity failure it returns the violations and a nil
// Driver; the resolver must never run over a program with unconsumed
// variables (§4.6).
func Build(p *program.Program, cfg Config) (*Driver, []error) {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	store := clausestore.New()
	for _, td := range p.TypeDefs {
		store.AddTypeDef(td)
	}
	for _, f := range p.PersistentFacts {
		store.AddPersistentFact(f)
	}
	for _, r := range p.Rules {
		store.AddRule(r)
	}

	if errs := linearity.Check(store); len(errs) > 0 {
		return nil, errs
	}

	led := ledger.New()
	for _, f := range p.LinearFacts {
		led.Insert(f)
	}

	engine := resolver.New(store, led, logger)
	cfgCopy := cfg

	return &Driver{Store: store, Ledger: led, Engine: engine, logger: logger, cfg: &cfgCopy}, nil
}

// RunAll executes every query in order, reporting each query's solutions
// against the same starting knowledge-base state (§4.8 step 3).
func (d *Driver) RunAll(ctx context.Context, queries []*program.Query) []QueryReport {
	reports := make([]QueryReport, 0, len(queries))
	for _, q := range queries {
		reports = append(reports, d.runOne(ctx, q))
	}
	return reports
}

func (d *Driver) runOne(ctx context.Context, q *program.Query) QueryReport {
	cp := d.Ledger.Checkpoint()
	defer d.Ledger.Restore(cp)

	qctx := ctx
	if d.budget() > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, d.budget())
		defer cancel()
	}

	var all []resolver.Solution
	aborted := false
	remaining := d.maxSolutions()

	for _, disjunct := range q.Disjuncts {
		dcp := d.Ledger.Checkpoint()
		opts := resolver.Options{}
		if remaining > 0 {
			opts.MaxSolutions = remaining
		}
		res := d.Engine.Solve(qctx, disjunct, q.QueryVars, opts)
		all = append(all, res.Solutions...)
		if res.Aborted {
			aborted = true
		}
		d.Ledger.Restore(dcp)
		if remaining > 0 {
			remaining -= len(res.Solutions)
			if remaining <= 0 {
				break
			}
		}
	}

	d.logger.Info("query evaluated", "solutions", len(all), "aborted", aborted)
	return QueryReport{Query: q, Solutions: all, Aborted: aborted}
}

func (d *Driver) budget() time.Duration {
	if d.cfg == nil {
		return 0
	}
	return d.cfg.Budget
}

func (d *Driver) maxSolutions() int {
	if d.cfg == nil {
		return 0
	}
	return d.cfg.MaxSolutions
}
