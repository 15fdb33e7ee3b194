// Package analyzer coordinates parsing and structural finders for one
// analysis request.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codecompass/engine/internal/lang"
	"github.com/codecompass/engine/internal/model"
	"github.com/codecompass/engine/internal/secrets"
)

// ErrUnsupportedLanguage reports a language identifier with no resolvable
// grammar. The HTTP boundary maps it to a client error.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Provider resolves a language identifier to its grammar configuration.
// Resolution must be deterministic per identifier.
type Provider interface {
	Grammar(language string) (*lang.Language, error)
}

// RegistryProvider resolves languages from the static registry and caches
// resolved handles process-wide. Concurrent first-use of the same language is
// harmless: LoadOrStore keeps whichever population wins, and handles for a
// given grammar are interchangeable.
type RegistryProvider struct {
	cache sync.Map // language identifier -> *lang.Language
}

// NewRegistryProvider returns an empty provider backed by lang.Languages.
func NewRegistryProvider() *RegistryProvider {
	return &RegistryProvider{}
}

// Grammar implements Provider.
func (p *RegistryProvider) Grammar(language string) (*lang.Language, error) {
	if v, ok := p.cache.Load(language); ok {
		return v.(*lang.Language), nil
	}
	l, ok := lang.Languages[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	actual, _ := p.cache.LoadOrStore(language, l)
	return actual.(*lang.Language), nil
}

// Finder inspects a parsed tree and reports improvement opportunities.
// Additional detectors register here; their findings are concatenated in
// registration order.
type Finder func(root *sitter.Node, source []byte, l *lang.Language) ([]model.Opportunity, error)

// Analyzer runs all registered finders over a freshly parsed tree.
type Analyzer struct {
	provider Provider
	finders  []Finder
	logger   hclog.Logger
}

// New creates an Analyzer with the default finder set (the hardcoded-secret
// detector).
func New(provider Provider, logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{
		provider: provider,
		finders:  []Finder{secrets.Detect},
		logger:   logger,
	}
}

// Analyze parses the request content and collects findings from every
// registered finder. The tree is built fresh per call and discarded; the
// analyzer holds no per-request state.
func (a *Analyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	l, err := a.provider.Grammar(req.Language)
	if err != nil {
		return nil, err
	}

	source := []byte(req.Content)
	tree, err := l.NewParser().ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s source: %w", req.Language, err)
	}
	defer tree.Close()

	opportunities := []model.Opportunity{}
	for _, find := range a.finders {
		found, err := find(tree.RootNode(), source, l)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, found...)
	}

	a.logger.Debug("analysis complete", "language", req.Language, "opportunities", len(opportunities))
	return &model.AnalysisResult{
		Status:        model.StatusAnalyzed,
		Opportunities: opportunities,
	}, nil
}

// RootNodeType parses the request content and returns the root node's
// grammar kind, confirming the language's parser works on the snippet.
func (a *Analyzer) RootNodeType(ctx context.Context, req model.AnalysisRequest) (string, error) {
	l, err := a.provider.Grammar(req.Language)
	if err != nil {
		return "", err
	}
	tree, err := l.NewParser().ParseCtx(ctx, nil, []byte(req.Content))
	if err != nil {
		return "", fmt.Errorf("parsing %s source: %w", req.Language, err)
	}
	defer tree.Close()
	return tree.RootNode().Type(), nil
}
