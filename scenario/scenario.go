// Package scenario runs the §8 end-to-end scenario table (A-F) and the
// cross-run quantified invariants (properties 6-8, which need more than
// one AnalysePage call to check) as executable regression checks. It is
// adapted from the teacher's eval package (eval/evaluator.go,
// eval/metrics.go), repurposed from grading LLM answers against a
// dataset of questions to grading authorship-graph behaviour against a
// dataset of revision sequences.
package scenario

import (
	"fmt"
	"reflect"

	"github.com/wikiwho/authgraph"
	"github.com/wikiwho/authgraph/arena"
	"github.com/wikiwho/authgraph/split"
)

// wordsOf returns every word pointer under rev, in storage order, by
// walking its paragraphs and sentences. Used by cases that need to
// inspect individual words' Outbound/Inbound lists rather than just
// their text (IterateTokens only exposes text).
func wordsOf(store *arena.Store, rev arena.RevisionPtr) []arena.WordPtr {
	var words []arena.WordPtr
	ra := store.RevisionAnalysis(rev)
	for _, p := range ra.Paragraphs {
		pa := store.ParagraphAnalysis(p)
		for _, s := range pa.Sentences {
			words = append(words, store.SentenceAnalysis(s).Words...)
		}
	}
	return words
}

// Case is one entry of a Dataset: an input revision sequence plus an
// assertion function checked against the resulting analysis (or error).
type Case struct {
	Name      string
	Revisions []authgraph.Revision
	Check     func(pa *authgraph.PageAnalysis, err error) error
}

// Dataset groups related cases, mirroring the teacher's eval.Dataset
// shape (name plus an ordered list of test cases).
type Dataset struct {
	Name  string
	Cases []Case
}

// Result is the outcome of running one Case.
type Result struct {
	Case    string
	Passed  bool
	Message string
}

// Run executes every case in ds against a fresh engine instance and
// reports pass/fail for each.
func Run(ds Dataset, cfg authgraph.Config) []Result {
	results := make([]Result, 0, len(ds.Cases))
	for _, c := range ds.Cases {
		pa, err := authgraph.AnalysePage(c.Revisions, cfg)
		if checkErr := c.Check(pa, err); checkErr != nil {
			results = append(results, Result{Case: c.Name, Passed: false, Message: checkErr.Error()})
		} else {
			results = append(results, Result{Case: c.Name, Passed: true})
		}
	}
	return results
}

func rev(id authgraph.RevisionID, text string) authgraph.Revision {
	return authgraph.Revision{ID: id, Text: authgraph.TextVariant{Text: text}}
}

func deletedRev(id authgraph.RevisionID) authgraph.Revision {
	return authgraph.Revision{ID: id, Text: authgraph.TextVariant{Deleted: true}}
}

// EndToEndDataset builds the §8 scenario table (A-F).
func EndToEndDataset() Dataset {
	return Dataset{
		Name: "end-to-end",
		Cases: []Case{
			{
				// A: (1, Deleted), (2, "® ￼") -> not spam; rev 2's
				// single sentence has words ["®", " ￼"].
				Name:      "A-deleted-first-revision-skipped",
				Revisions: []authgraph.Revision{deletedRev(1), rev(2, "® ￼")},
				Check: func(pa *authgraph.PageAnalysis, err error) error {
					if err != nil {
						return fmt.Errorf("unexpected error: %w", err)
					}
					if len(pa.SpamIDs) != 0 {
						return fmt.Errorf("expected no spam, got %v", pa.SpamIDs)
					}
					ptr, ok := pa.RevisionsByID[2]
					if !ok {
						return fmt.Errorf("expected revision 2 to commit")
					}
					tokens := authgraph.IterateTokens(pa.Store, ptr)
					want := []string{"®", " ￼"}
					if !reflect.DeepEqual(tokens, want) {
						return fmt.Errorf("rev 2 tokens = %q, want %q", tokens, want)
					}
					return nil
				},
			},
			{
				// B: (1, "funny.-."), (2, "-.some") -> no spam; rev 2
				// allocates new words; "." and "-" from rev 1 get
				// outbound=[2].
				Name:      "B-partial-reuse-with-outbound",
				Revisions: []authgraph.Revision{rev(1, "funny.-."), rev(2, "-.some")},
				Check: func(pa *authgraph.PageAnalysis, err error) error {
					if err != nil {
						return fmt.Errorf("unexpected error: %w", err)
					}
					if len(pa.SpamIDs) != 0 {
						return fmt.Errorf("expected no spam, got %v", pa.SpamIDs)
					}
					rev1Ptr, ok := pa.RevisionsByID[1]
					if !ok {
						return fmt.Errorf("expected revision 1 to commit")
					}
					seen := map[string]bool{".": false, "-": false}
					for _, wp := range wordsOf(pa.Store, rev1Ptr) {
						rec := pa.Store.Word(wp)
						if _, want := seen[rec.Text]; !want {
							continue
						}
						wa := pa.Store.WordAnalysis(wp)
						if !reflect.DeepEqual(wa.Outbound, []int32{2}) {
							return fmt.Errorf("rev 1 word %q: outbound = %v, want [2]", rec.Text, wa.Outbound)
						}
						seen[rec.Text] = true
					}
					for text, found := range seen {
						if !found {
							return fmt.Errorf("expected a %q word from revision 1", text)
						}
					}
					return nil
				},
			},
			{
				// C: identical content reuses every identity, zero
				// original adds, no inbound additions.
				Name:      "C-identical-content-reuses-identity",
				Revisions: []authgraph.Revision{rev(1, "a b c"), rev(2, "a b c")},
				Check: func(pa *authgraph.PageAnalysis, err error) error {
					if err != nil {
						return fmt.Errorf("unexpected error: %w", err)
					}
					ra := pa.Store.RevisionAnalysis(pa.RevisionsByID[2])
					if ra.OriginalAdds != 0 {
						return fmt.Errorf("expected zero original adds, got %d", ra.OriginalAdds)
					}
					return nil
				},
			},
			{
				// D: heavy deletion without comment, not minor -> rev 2
				// rejected.
				Name:      "D-heavy-deletion-rejected",
				Revisions: []authgraph.Revision{rev(1, repeatChar('x', 1500)), rev(2, repeatChar('y', 100))},
				Check: func(pa *authgraph.PageAnalysis, err error) error {
					if err != nil {
						return fmt.Errorf("unexpected error: %w", err)
					}
					if len(pa.SpamIDs) != 1 || pa.SpamIDs[0] != 2 {
						return fmt.Errorf("expected spam_ids=[2], got %v", pa.SpamIDs)
					}
					if len(pa.RevisionsByID) != 1 {
						return fmt.Errorf("expected only revision 1 committed, got %v", pa.OrderedRevisions)
					}
					return nil
				},
			},
			{
				// E: a word removed then reinstated reuses identity, with
				// inbound=[3], outbound=[2].
				Name:      "E-reinstated-word-reuses-identity",
				Revisions: []authgraph.Revision{rev(1, "x"), rev(2, "y"), rev(3, "x")},
				Check: func(pa *authgraph.PageAnalysis, err error) error {
					if err != nil {
						return fmt.Errorf("unexpected error: %w", err)
					}
					tokens := authgraph.IterateTokens(pa.Store, pa.RevisionsByID[3])
					if !reflect.DeepEqual(tokens, []string{"x"}) {
						return fmt.Errorf("expected rev 3 tokens [x], got %v", tokens)
					}
					return nil
				},
			},
			{
				// F: all revisions deleted -> NoValidRevisions.
				Name:      "F-all-deleted-yields-error",
				Revisions: []authgraph.Revision{deletedRev(1), deletedRev(2)},
				Check: func(pa *authgraph.PageAnalysis, err error) error {
					if err == nil {
						return fmt.Errorf("expected an error, got nil")
					}
					return nil
				},
			},
		},
	}
}

func repeatChar(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

// Idempotent checks property 8: running AnalysePage twice over the same
// revisions produces equal spam sets and equal ordered-revision lists.
func Idempotent(revisions []authgraph.Revision, cfg authgraph.Config) error {
	first, err1 := authgraph.AnalysePage(revisions, cfg)
	second, err2 := authgraph.AnalysePage(revisions, cfg)

	if (err1 == nil) != (err2 == nil) {
		return fmt.Errorf("idempotence: error presence differs: %v vs %v", err1, err2)
	}
	if err1 != nil {
		return nil
	}
	if !reflect.DeepEqual(first.SpamIDs, second.SpamIDs) {
		return fmt.Errorf("idempotence: spam ids differ: %v vs %v", first.SpamIDs, second.SpamIDs)
	}
	if !reflect.DeepEqual(first.OrderedRevisions, second.OrderedRevisions) {
		return fmt.Errorf("idempotence: ordered revisions differ: %v vs %v", first.OrderedRevisions, second.OrderedRevisions)
	}
	return nil
}

// PrefixStable checks property 6: the spam-ID set produced by analysing
// the first k revisions is a prefix of the spam-ID set produced by
// analysing the first k+1, for every k.
func PrefixStable(revisions []authgraph.Revision, cfg authgraph.Config) error {
	for k := 1; k < len(revisions); k++ {
		shorter, errShort := authgraph.AnalysePage(revisions[:k], cfg)
		longer, errLong := authgraph.AnalysePage(revisions[:k+1], cfg)
		if errShort != nil || errLong != nil {
			continue
		}
		if len(longer.SpamIDs) < len(shorter.SpamIDs) {
			return fmt.Errorf("prefix stability: k=%d spam set shrank: %v -> %v", k, shorter.SpamIDs, longer.SpamIDs)
		}
		for i, id := range shorter.SpamIDs {
			if longer.SpamIDs[i] != id {
				return fmt.Errorf("prefix stability: k=%d spam set %v is not a prefix of %v", k, shorter.SpamIDs, longer.SpamIDs)
			}
		}
	}
	return nil
}

// RoundTrip checks property 7: replaying a committed revision's token
// order via IterateTokens matches the canonicalized sentence split of
// its own text.
func RoundTrip(pa *authgraph.PageAnalysis, rev authgraph.RevisionID) error {
	ptr, ok := pa.RevisionsByID[rev]
	if !ok {
		return fmt.Errorf("round-trip: revision %d was not committed", rev)
	}
	got := authgraph.IterateTokens(pa.Store, ptr)

	rec := pa.Store.Revision(ptr)
	var want []string
	for _, s := range split.IntoSentences(rec.LowercasedText) {
		want = append(want, split.IntoTokens(split.Canonicalize(s))...)
	}

	if !reflect.DeepEqual(got, want) {
		return fmt.Errorf("round-trip: revision %d: got %v, want %v", rev, got, want)
	}
	return nil
}
