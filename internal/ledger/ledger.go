// Package ledger implements the resource ledger: the exactly-once
// consumption bookkeeping for linear facts, with checkpoint/restore for
// backtracking (§4.4). Resources are indexed by a monotonically assigned
// id; checkpoints are trail-based per the Design Notes (§9) rather than
// full-state snapshots, so restoring a ledger with many resources does not
// require copying the whole state vector.
package ledger

import (
	"fmt"

	"github.com/gitrdm/linearkb/internal/subst"
	"github.com/gitrdm/linearkb/internal/term"
	"github.com/gitrdm/linearkb/internal/unify"
)

// State is a resource's position in the Available -> Consumed lifecycle.
// Deallocated is reserved for resources whose owning checkpoint has been
// dropped permanently (never reached in normal query evaluation, since a
// checkpoint restore truncates rather than deallocates).
type State int

const (
	Available State = iota
	Consumed
	Deallocated
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Consumed:
		return "consumed"
	case Deallocated:
		return "deallocated"
	default:
		return "unknown"
	}
}

// Resource is a linear fact plus its consumption state.
type Resource struct {
	ID     uint64
	Clause term.Term
	State  State
}

// AlreadyConsumedError is raised by Consume when a resource is not
// Available. In a well-formed derivation the resolver never calls Consume
// twice on the same id without an intervening restore; seeing this error
// indicates an engine bug, per spec §7.
type AlreadyConsumedError struct {
	ID        uint64
	Predicate string
}

func (e *AlreadyConsumedError) Error() string {
	return fmt.Sprintf("resource %d (%s) already consumed", e.ID, e.Predicate)
}

// Checkpoint is an opaque handle capturing the ledger's length and trail
// position at the moment it was taken.
type Checkpoint struct {
	resourceLen int
	trailLen    int
}

type trailEntry struct {
	id  uint64
	old State
}

// Ledger owns a query's resources exclusively for the duration of one
// resolver invocation; see the concurrency model in spec §5.
type Ledger struct {
	resources []*Resource
	trail     []trailEntry
}

func New() *Ledger {
	return &Ledger{}
}

// Insert creates a new Available resource and returns its id. Ids are
// assigned in ascending order starting at 0, which is what gives
// FindMatching its deterministic iteration order.
func (l *Ledger) Insert(fact term.Term) uint64 {
	id := uint64(len(l.resources))
	l.resources = append(l.resources, &Resource{ID: id, Clause: fact, State: Available})
	return id
}

// Get returns the resource with the given id, or nil if out of range or
// truncated by an earlier restore.
func (l *Ledger) Get(id uint64) *Resource {
	if id >= uint64(len(l.resources)) {
		return nil
	}
	return l.resources[id]
}

// Len reports the number of resources currently tracked (including
// Consumed ones); this is also the next id that Insert will assign.
func (l *Ledger) Len() int { return len(l.resources) }

// Consume transitions a resource Available -> Consumed, recording the
// transition on the trail so a later Restore can reverse it.
func (l *Ledger) Consume(id uint64) error {
	r := l.Get(id)
	if r == nil {
		return fmt.Errorf("ledger: consume of unknown resource %d", id)
	}
	if r.State != Available {
		name, _, _ := term.Functor(r.Clause)
		return &AlreadyConsumedError{ID: id, Predicate: name}
	}
	l.trail = append(l.trail, trailEntry{id: id, old: r.State})
	r.State = Consumed
	return nil
}

// Checkpoint captures the current ledger position in O(1).
func (l *Ledger) Checkpoint() Checkpoint {
	return Checkpoint{resourceLen: len(l.resources), trailLen: len(l.trail)}
}

// Restore reinstates every resource's state as of cp and drops any
// resource inserted after cp was taken (id >= cp.resourceLen), including
// resources added by a rule's produces clause — so a produced effect that
// is later backtracked over never survives.
func (l *Ledger) Restore(cp Checkpoint) {
	if cp.resourceLen < len(l.resources) {
		l.resources = l.resources[:cp.resourceLen]
	}
	for i := len(l.trail) - 1; i >= cp.trailLen; i-- {
		e := l.trail[i]
		if int(e.id) < len(l.resources) {
			l.resources[e.id].State = e.old
		}
	}
	l.trail = l.trail[:cp.trailLen]
}

// Match pairs a matching resource's id with the substitution that made it
// match.
type Match struct {
	ID    uint64
	Subst *subst.Substitution
}

// FindMatching yields, in ascending id order, every Available resource
// whose clause unifies with goal under sigma, paired with the resulting
// extended substitution. Ascending id order is what makes solution
// enumeration reproducible (§4.4). rename is applied to each resource's
// clause before unification, so that a fact carrying its own variables
// gets a fresh instance per attempt, the same way a rule's clause does on
// entry (Design Notes §9); pass a no-op identity function if the program's
// facts are always ground.
func (l *Ledger) FindMatching(goal term.Term, sigma *subst.Substitution, u *unify.Unifier, rename func(term.Term) term.Term) []Match {
	var out []Match
	for _, r := range l.resources {
		if r.State != Available {
			continue
		}
		if s2, ok := u.Unify(rename(r.Clause), goal, sigma); ok {
			out = append(out, Match{ID: r.ID, Subst: s2})
		}
	}
	return out
}
