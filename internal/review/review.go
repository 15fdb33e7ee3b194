// Package review submits code snippets to a hosted generative model for a
// holistic review and parses the model's JSON reply into opportunities.
//
// The package contract: Review never fails. Network errors, non-JSON replies,
// and empty completions all degrade to an empty opportunity list; core
// analysis must not depend on the review path being healthy.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codecompass/engine/internal/model"
)

// Service reviews a snippet and returns improvement opportunities.
type Service interface {
	Review(ctx context.Context, language, content string) []model.ReviewOpportunity
}

// Disabled is the no-op review service used when no AI provider is
// configured.
type Disabled struct{}

// Review implements Service.
func (Disabled) Review(context.Context, string, string) []model.ReviewOpportunity {
	return nil
}

const promptTemplate = `You are CodeCompass, a world-class principal software engineer and an expert in the programming language: %[1]s.

Perform a holistic code review of the following code snippet, which is written in %[1]s.

Analyze the code for any and all issues related to:
- Performance bottlenecks
- Readability and code style
- Security vulnerabilities
- Maintainability and anti-patterns
- Adherence to modern best practices for %[1]s

If you find opportunities for improvement, respond ONLY with a valid JSON object containing a single key "opportunities", which is a list of objects.
Each opportunity object must have the following keys: "title" (a short, descriptive title), "problem" (a simple, one-paragraph explanation with an analogy), and "solution" (a brief, step-by-step explanation using numbered points separated by '\n').

If you find NO opportunities, respond ONLY with an empty JSON object: {"opportunities": []}.

Do not include ` + "```json" + ` markdown wrappers in your response.

Code Snippet to Analyze:
` + "```" + `
%[2]s
` + "```" + `
`

// buildPrompt renders the universal, language-agnostic review prompt.
func buildPrompt(language, content string) string {
	return fmt.Sprintf(promptTemplate, language, content)
}

var fenceRe = regexp.MustCompile("```json\\s*|\\s*```")

// parseReply extracts opportunities from a model reply. Models sometimes wrap
// the JSON in markdown fences despite the prompt; strip them before decoding.
// Any decode failure yields nil.
func parseReply(raw string) []model.ReviewOpportunity {
	cleaned := fenceRe.ReplaceAllString(strings.TrimSpace(raw), "")
	var payload struct {
		Opportunities []model.ReviewOpportunity `json:"opportunities"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil
	}
	return payload.Opportunities
}

// loggerOrNull guards backends constructed without a logger.
func loggerOrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
