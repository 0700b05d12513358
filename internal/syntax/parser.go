// Package syntax is the lexer/parser front end spec §1 calls an external
// collaborator to the core engine: it turns source text into the
// program.Program value the driver consumes (§6). It is intentionally thin
// — one diagnostic per failure, no recovery — since the specification
// scopes a production-quality front end out of the core.
package syntax

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"github.com/gitrdm/linearkb/internal/program"
)

var parser = participle.MustBuild[fileNode](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses source text (filename is used only for diagnostics) into a
// program.Program.
func Parse(filename, source string) (*program.Program, error) {
	f, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, reportParseError(source, err)
	}
	return toProgram(f), nil
}

// reportParseError turns a participle error into a caret-annotated message
// pointing at the offending line, matching the teacher pack's front-end
// diagnostic style.
func reportParseError(src string, err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return err
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return fmt.Errorf("syntax error at %s: %w", pos, err)
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", color.RedString("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column))
	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "%s\n", color.HiRedString(caret))
	fmt.Fprintf(&b, "-> %s", pe.Message())
	return fmt.Errorf("%s", b.String())
}
