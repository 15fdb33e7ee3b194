// Package lang provides a language registry mapping language identifiers to
// tree-sitter grammars and their embedded secret-detection queries.
package lang

import (
	"embed"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

//go:embed queries/*.scm
var queryFS embed.FS

// QueryKind selects the structural query template used to find variable
// bindings with string-like values in a language's grammar.
type QueryKind string

const (
	// QueryAssignment matches "identifier = string" assignment statements
	// (Python/Ruby shape).
	QueryAssignment QueryKind = "assignment"
	// QueryDeclarator matches variable declarators whose initializer is a
	// string or template string (JavaScript/TypeScript shape).
	QueryDeclarator QueryKind = "declarator"
)

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name string

	// QueryKind picks the secret-query template. Leave empty to use the
	// assignment-style template, which is the documented default for
	// languages without a dedicated template.
	QueryKind QueryKind

	lang      *sitter.Language
	queryOnce sync.Once
	query     *sitter.Query
	queryErr  error
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Parsers are not thread-safe; every analysis call must use its own.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// EffectiveQueryKind returns the query template kind, defaulting to the
// assignment-style template when none is registered.
func (l *Language) EffectiveQueryKind() QueryKind {
	if l.QueryKind == "" {
		return QueryAssignment
	}
	return l.QueryKind
}

// SecretQuery returns the compiled secret-detection query for this language
// (safe to share across goroutines). The template is compiled against this
// language's grammar once and cached.
func (l *Language) SecretQuery() (*sitter.Query, error) {
	l.queryOnce.Do(func() {
		data, err := queryFS.ReadFile(fmt.Sprintf("queries/%s.scm", l.EffectiveQueryKind()))
		if err != nil {
			l.queryErr = fmt.Errorf("reading query file: %w", err)
			return
		}
		q, err := sitter.NewQuery(data, l.lang)
		if err != nil {
			l.queryErr = fmt.Errorf("compiling query: %w", err)
			return
		}
		l.query = q
	})
	return l.query, l.queryErr
}

// Languages maps language identifiers to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
