package authgraph

import (
	"errors"
	"testing"
)

func mustAnalyse(t *testing.T, revs []Revision) *PageAnalysis {
	t.Helper()
	pa, err := AnalysePage(revs, DefaultConfig())
	if err != nil {
		t.Fatalf("AnalysePage: %v", err)
	}
	return pa
}

func textRev(id RevisionID, text string) Revision {
	return Revision{ID: id, Text: TextVariant{Text: text}}
}

// Scenario F: every revision deleted yields ErrNoValidRevisions.
func TestAnalysePage_AllDeletedYieldsError(t *testing.T) {
	revs := []Revision{
		{ID: 1, Text: TextVariant{Deleted: true}},
		{ID: 2, Text: TextVariant{Deleted: true}},
	}
	_, err := AnalysePage(revs, DefaultConfig())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrNoValidRevisions) {
		t.Fatalf("expected ErrNoValidRevisions, got %v", err)
	}
}

// Scenario C: identical content across two revisions reuses every
// paragraph, sentence and word identity, so rev 2 has zero original adds
// and no inbound entries (latest already equals prev).
func TestAnalysePage_IdenticalRevisionReusesIdentity(t *testing.T) {
	pa := mustAnalyse(t, []Revision{
		textRev(1, "a b c"),
		textRev(2, "a b c"),
	})

	if len(pa.SpamIDs) != 0 {
		t.Fatalf("expected no spam, got %v", pa.SpamIDs)
	}
	rev2 := pa.RevisionsByID[2]
	ra := pa.Store.RevisionAnalysis(rev2)
	if ra.OriginalAdds != 0 {
		t.Fatalf("expected zero original adds on rev 2, got %d", ra.OriginalAdds)
	}

	for _, p := range ra.Paragraphs {
		for _, s := range pa.Store.ParagraphAnalysis(p).Sentences {
			for _, w := range pa.Store.SentenceAnalysis(s).Words {
				wa := pa.Store.WordAnalysis(w)
				if len(wa.Inbound) != 0 {
					t.Fatalf("expected no inbound entries for reused word, got %v", wa.Inbound)
				}
				if wa.MatchedInCurrent {
					t.Fatal("expected matched_in_current cleared after analysis")
				}
			}
		}
	}
}

// Scenario D: a heavy, uncommented, non-minor deletion of a long
// revision is rejected and excluded from the result.
func TestAnalysePage_HeavyDeletionRejected(t *testing.T) {
	long := ""
	for i := 0; i < 1600; i++ {
		long += "x"
	}
	pa := mustAnalyse(t, []Revision{
		textRev(1, long),
		textRev(2, "short"),
	})

	if len(pa.SpamIDs) != 1 || pa.SpamIDs[0] != 2 {
		t.Fatalf("expected rev 2 rejected as spam, got %v", pa.SpamIDs)
	}
	if _, ok := pa.RevisionsByID[2]; ok {
		t.Fatal("rejected revision must not appear in RevisionsByID")
	}
	if _, ok := pa.RevisionsByID[1]; !ok {
		t.Fatal("revision 1 should have committed")
	}
}

// Scenario E: a word removed then reinstated reuses its original
// identity, with inbound/outbound recording the gap.
func TestAnalysePage_WordReinstatementReusesIdentity(t *testing.T) {
	pa := mustAnalyse(t, []Revision{
		textRev(1, "x"),
		textRev(2, "y"),
		textRev(3, "x"),
	})

	rev3 := pa.RevisionsByID[3]
	tokens := IterateTokens(pa.Store, rev3)
	if len(tokens) != 1 || tokens[0] != "x" {
		t.Fatalf("expected rev 3 to contain token 'x', got %v", tokens)
	}

	ra := pa.Store.RevisionAnalysis(rev3)
	var wordX WordPtr
	found := false
	for _, p := range ra.Paragraphs {
		for _, s := range pa.Store.ParagraphAnalysis(p).Sentences {
			for _, w := range pa.Store.SentenceAnalysis(s).Words {
				wordX = w
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected to find the word 'x' in rev 3")
	}
	wa := pa.Store.WordAnalysis(wordX)
	if wa.OriginRevisionID != 1 {
		t.Fatalf("expected origin revision 1, got %d", wa.OriginRevisionID)
	}
	if len(wa.Inbound) != 1 || wa.Inbound[0] != 3 {
		t.Fatalf("expected inbound=[3], got %v", wa.Inbound)
	}
	if len(wa.Outbound) != 1 || wa.Outbound[0] != 2 {
		t.Fatalf("expected outbound=[2], got %v", wa.Outbound)
	}
}
