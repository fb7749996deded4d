package validate

import (
	"testing"

	"github.com/wikiwho/authgraph"
)

func TestCheck_CleanAnalysisHasNoIssues(t *testing.T) {
	pa, err := authgraph.AnalysePage([]authgraph.Revision{
		{ID: 1, Text: authgraph.TextVariant{Text: "alpha beta"}},
		{ID: 2, Text: authgraph.TextVariant{Text: "alpha beta gamma"}},
	}, authgraph.DefaultConfig())
	if err != nil {
		t.Fatalf("AnalysePage: %v", err)
	}

	issues := Check(pa)
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}
