package syntax

import (
	"strconv"
	"strings"

	"github.com/gitrdm/linearkb/internal/clausestore"
	"github.com/gitrdm/linearkb/internal/program"
	"github.com/gitrdm/linearkb/internal/term"
)

func toTerm(n *termNode) term.Term {
	switch {
	case n.Clone != nil:
		return term.NewClone(toTerm(n.Clone))
	case n.Compound != nil:
		args := make([]term.Term, len(n.Compound.Args))
		for i, a := range n.Compound.Args {
			args[i] = toTerm(a)
		}
		return term.NewCompound(n.Compound.Functor, args...)
	case n.Variable != nil:
		v := term.NewVariable(n.Variable.Name)
		if n.Variable.Type != nil {
			v.Type = *n.Variable.Type
		}
		return v
	case n.Integer != nil:
		i, err := strconv.ParseInt(*n.Integer, 10, 64)
		if err != nil {
			// The lexer only ever produces digit sequences for Integer
			// tokens, so this can only happen for an int64 overflow.
			i = 0
		}
		return term.NewInteger(i)
	case n.Atom != nil:
		a := term.NewAtom(n.Atom.Name)
		if n.Atom.Type != nil {
			a.Type = *n.Atom.Type
		}
		return a
	default:
		panic("syntax: empty termNode")
	}
}

func toConjunction(n *conjNode) []term.Term {
	goals := make([]term.Term, len(n.Terms))
	for i, t := range n.Terms {
		goals[i] = toTerm(t)
	}
	return goals
}

func queryVars(disjuncts [][]term.Term) []string {
	seen := map[string]bool{}
	var names []string
	for _, conj := range disjuncts {
		for _, g := range conj {
			term.Walk(g, func(v term.Variable) {
				if !seen[v.Name] {
					seen[v.Name] = true
					names = append(names, v.Name)
				}
			})
		}
	}
	return names
}

func sourceOf(disjuncts [][]term.Term) string {
	parts := make([]string, len(disjuncts))
	for i, conj := range disjuncts {
		terms := make([]string, len(conj))
		for j, g := range conj {
			terms[j] = g.String()
		}
		parts[i] = strings.Join(terms, " & ")
	}
	return strings.Join(parts, " | ")
}

// toProgram converts the raw parse tree of one file into a program.Program.
func toProgram(f *fileNode) *program.Program {
	p := &program.Program{TermTypes: map[string]string{}}

	for _, item := range f.Items {
		switch {
		case item.TypeDecl != nil:
			td := clausestore.TypeDef{Name: item.TypeDecl.Name, Variants: item.TypeDecl.Variants}
			p.TypeDefs = append(p.TypeDefs, td)
			for _, v := range td.Variants {
				p.TermTypes[v] = td.Name
			}

		case item.Rule != nil:
			r := &clausestore.Rule{
				Head: toTerm(item.Rule.Head),
				Pos:  clausestore.Position{Line: item.Rule.Pos.Line, Column: item.Rule.Pos.Column},
			}
			r.Body = make([]term.Term, len(item.Rule.Body))
			for i, b := range item.Rule.Body {
				r.Body[i] = toTerm(b)
			}
			if item.Rule.Produces != nil {
				r.Produces = toTerm(item.Rule.Produces)
			}
			p.Rules = append(p.Rules, r)

		case item.PFact != nil:
			p.PersistentFacts = append(p.PersistentFacts, toTerm(item.PFact.Fact))

		case item.Query != nil:
			disjuncts := make([][]term.Term, len(item.Query.Disjuncts))
			for i, c := range item.Query.Disjuncts {
				disjuncts[i] = toConjunction(c)
			}
			p.Queries = append(p.Queries, &program.Query{
				Disjuncts:   disjuncts,
				Disjunctive: len(disjuncts) > 1,
				QueryVars:   queryVars(disjuncts),
				Source:      sourceOf(disjuncts),
			})

		case item.Fact != nil:
			p.LinearFacts = append(p.LinearFacts, toTerm(item.Fact.Fact))

		default:
			panic("syntax: empty itemNode")
		}
	}

	return p
}
