// Package secrets finds hardcoded secret-looking string assignments in a
// syntax tree using tree-sitter structural queries and two text heuristics.
package secrets

import (
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codecompass/engine/internal/lang"
	"github.com/codecompass/engine/internal/model"
)

// Role tags a captured node as the bound identifier or the assigned value.
type Role string

const (
	RoleBinding Role = "binding"
	RoleValue   Role = "value"
)

// Capture is one node matched by the secret query, tagged with its role.
// Captures are valid only while the originating tree is alive.
type Capture struct {
	Node *sitter.Node
	Role Role
}

var (
	sensitiveNameRe = regexp.MustCompile(`(?i)key|secret|token|password|cred`)

	// Character-class proxy for "looks like a random secret": the value must
	// contain a lowercase letter, an uppercase letter, a digit, and a run of
	// at least 20 letters/digits. Deliberately not a real entropy measure.
	lowerRe    = regexp.MustCompile(`[a-z]`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
	alnumRunRe = regexp.MustCompile(`[a-zA-Z0-9]{20,}`)
)

// Match runs the language's secret query against the tree rooted at root and
// returns every captured node in traversal order. Each structural match
// contributes one binding-site and one value-site capture sharing the same
// assignment/declarator parent.
func Match(root *sitter.Node, source []byte, l *lang.Language) ([]Capture, error) {
	q, err := l.SecretQuery()
	if err != nil {
		return nil, fmt.Errorf("secret query for %s: %w", l.Name, err)
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var captures []Capture
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, source)

		for _, c := range match.Captures {
			switch q.CaptureNameForId(c.Index) {
			case "binding":
				captures = append(captures, Capture{Node: c.Node, Role: RoleBinding})
			case "value":
				captures = append(captures, Capture{Node: c.Node, Role: RoleValue})
			}
		}
	}
	return captures, nil
}

// Evaluate correlates binding-site captures with value-site captures that
// share the same syntactic parent and emits a finding for every pair whose
// name looks sensitive and whose value looks high-entropy. It never fails;
// uncorrelated bindings are skipped.
func Evaluate(captures []Capture, source []byte) []model.Opportunity {
	var found []model.Opportunity

	for _, b := range captures {
		if b.Role != RoleBinding {
			continue
		}
		parent := b.Node.Parent()
		if parent == nil {
			continue
		}
		name := lang.NodeText(b.Node, source)

		for _, v := range captures {
			if v.Role != RoleValue {
				continue
			}
			vp := v.Node.Parent()
			if vp == nil || !vp.Equal(parent) {
				continue
			}

			value := stripQuotes(lang.NodeText(v.Node, source))
			if sensitiveNameRe.MatchString(name) && looksHighEntropy(value) {
				found = append(found, model.Opportunity{
					Type:     model.TypeHardcodedSecret,
					Line:     int(b.Node.StartPoint().Row) + 1,
					Variable: name,
				})
			}
		}
	}
	return found
}

// Detect is the combined finder: structural match followed by heuristic
// evaluation. It has the shape expected by the analyzer's finder registry.
func Detect(root *sitter.Node, source []byte, l *lang.Language) ([]model.Opportunity, error) {
	captures, err := Match(root, source, l)
	if err != nil {
		return nil, err
	}
	return Evaluate(captures, source), nil
}

// stripQuotes removes leading/trailing quote and backtick delimiters. It is
// intentionally a delimiter strip, not escape decoding: decoding could alter
// the character classes the entropy heuristic depends on.
func stripQuotes(s string) string {
	return strings.Trim(s, "'\"`")
}

func looksHighEntropy(value string) bool {
	return lowerRe.MatchString(value) &&
		upperRe.MatchString(value) &&
		digitRe.MatchString(value) &&
		alnumRunRe.MatchString(value)
}
