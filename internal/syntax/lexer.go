package syntax

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes the surface language: facts, persistent-fact and rule
// declarations, queries, and the term syntax of spec §6 (atoms, integers,
// variables prefixed with $, compounds, and !-prefixed clones). Multi-
// character operators are listed before the single-character Punct
// catch-all so the lexer prefers the longer match at a given position.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "PersistentRule", Pattern: `!rule\b`},
	{Name: "PersistentFact", Pattern: `!fact\b`},
	{Name: "QueryArrow", Pattern: `\?-`},
	{Name: "RuleArrow", Pattern: `:-`},
	{Name: "Produces", Pattern: `=>`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[(),.:;&|!$=@]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
