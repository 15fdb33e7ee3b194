// Package model defines core data structures for the analysis engine.
package model

// AnalysisRequest is a single snippet of source code submitted for analysis.
type AnalysisRequest struct {
	Language string `json:"language"`
	Content  string `json:"content"`
}

// Opportunity is an improvement opportunity found by a structural finder.
type Opportunity struct {
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Variable string `json:"variable"`
}

// TypeHardcodedSecret classifies a secret-looking string literal bound to a
// sensitively named variable.
const TypeHardcodedSecret = "HARDCODED_SECRET"

// ReviewOpportunity is an improvement opportunity produced by the AI review
// service. Its shape is fixed by the review prompt.
type ReviewOpportunity struct {
	Title    string `json:"title"`
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// Status markers returned to API clients.
const (
	StatusAnalyzed = "analyzed"
	StatusParsed   = "parsed"
)

// AnalysisResult holds the findings of one analysis pass over a snippet.
type AnalysisResult struct {
	Status        string
	Opportunities []Opportunity
}
