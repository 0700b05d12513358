package syntax

import "github.com/alecthomas/participle/v2/lexer"

// The grammar below is the raw parse tree (participle struct tags); see
// ast.go for the conversion into internal/term and internal/program
// values. The front end is deliberately small: spec §1 scopes the
// surface-syntax lexer/parser out of the hard-engineering core, so this
// package exists only to give the resolver something runnable to chew on.

type fileNode struct {
	Items []*itemNode `@@*`
}

type itemNode struct {
	TypeDecl *typeDeclNode `  @@`
	Rule     *ruleNode     `| @@`
	PFact    *pfactNode    `| @@`
	Query    *queryNode    `| @@`
	Fact     *factNode     `| @@`
}

type typeDeclNode struct {
	Name     string   `"type" @Ident "="`
	Variants []string `@Ident { "|" @Ident } "."`
}

type ruleNode struct {
	Pos      lexer.Position
	Head     *termNode   `PersistentRule ":" @@`
	Body     []*termNode `RuleArrow @@ { "," @@ }`
	Produces *termNode   `[ Produces @@ ] "."`
}

type pfactNode struct {
	Fact *termNode `PersistentFact ":" @@ "."`
}

type factNode struct {
	Fact *termNode `@@ "."`
}

type queryNode struct {
	Disjuncts []*conjNode `QueryArrow @@ { "|" @@ } "."`
}

type conjNode struct {
	Terms []*termNode `@@ { "&" @@ }`
}

type termNode struct {
	Clone    *termNode     `  "!" @@`
	Compound *compoundNode `| @@`
	Variable *variableNode `| @@`
	Integer  *string       `| @Integer`
	Atom     *atomNode     `| @@`
}

type compoundNode struct {
	Functor string      `@Ident "("`
	Args    []*termNode `@@ { "," @@ } ")"`
}

type variableNode struct {
	Name string  `"$" @Ident`
	Type *string `[ "@" @Ident ]`
}

type atomNode struct {
	Name string  `@Ident`
	Type *string `[ "@" @Ident ]`
}
