// Package report renders query driver output in the canonical syntax of
// spec §6: "?- goal1 & goal2." followed by "true (k solutions found)." or
// "false." — with ground terms printed atoms-bare, integers-decimal,
// compounds as f(a1, …, an), and clones as !t (which internal/term's
// String methods already produce).
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gitrdm/linearkb/internal/driver"
	"github.com/gitrdm/linearkb/internal/term"
)

// WriteQuery writes one query's report line plus its result line.
func WriteQuery(w io.Writer, rep driver.QueryReport) {
	fmt.Fprintf(w, "?- %s.\n", rep.Query.Source)
	if len(rep.Solutions) == 0 {
		fmt.Fprintln(w, "false.")
		return
	}
	fmt.Fprintf(w, "true (%d solutions found).\n", len(rep.Solutions))
	for _, sol := range rep.Solutions {
		fmt.Fprintln(w, "  "+bindingsString(sol.Bindings))
	}
	if rep.Aborted {
		fmt.Fprintln(w, "  (partial: solution cap or time budget reached)")
	}
}

// WriteAll writes every query report in order, blank-line separated.
func WriteAll(w io.Writer, reports []driver.QueryReport) {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		WriteQuery(w, r)
	}
}

func bindingsString(bindings map[string]term.Term) string {
	names := make([]string, 0, len(bindings))
	for n := range bindings {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("$%s = %s", n, bindings[n].String())
	}
	return strings.Join(parts, ", ")
}
