// Package validate checks a completed authgraph.PageAnalysis against the
// structural invariants of §8 (properties 1-5; the cross-run properties
// 6-8 are checked by the scenario package, which drives the engine
// multiple times). The aggregate-issues-list shape is adapted from the
// teacher's reasoning/validator.go, repurposed from grading LLM answers
// to grading authorship-graph invariants.
package validate

import (
	"fmt"
	"sort"

	"github.com/wikiwho/authgraph"
	"github.com/wikiwho/authgraph/arena"
	"github.com/wikiwho/authgraph/split"
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityError Severity = "error"
)

// Issue describes one invariant violation found in a PageAnalysis.
type Issue struct {
	Severity Severity
	Property string
	Message  string
}

// Check runs every structural invariant against pa and returns every
// violation found. An empty result means pa satisfies §8 properties 1-5.
func Check(pa *authgraph.PageAnalysis) []Issue {
	var issues []Issue
	issues = append(issues, checkOriginBeforeLatest(pa)...)
	issues = append(issues, checkInboundOutboundSorted(pa)...)
	issues = append(issues, checkNoMatchedFlagsLeft(pa)...)
	issues = append(issues, checkParagraphHashes(pa)...)
	issues = append(issues, checkParagraphCounts(pa)...)
	return issues
}

func committedSet(pa *authgraph.PageAnalysis) map[authgraph.RevisionID]struct{} {
	set := make(map[authgraph.RevisionID]struct{}, len(pa.OrderedRevisions))
	for _, id := range pa.OrderedRevisions {
		set[id] = struct{}{}
	}
	return set
}

// checkOriginBeforeLatest verifies property 1: origin_revision_id is
// never later, in commit order, than latest_revision_id.
func checkOriginBeforeLatest(pa *authgraph.PageAnalysis) []Issue {
	seq := commitSeqByID(pa)
	var issues []Issue
	for i := 0; i < pa.Store.NumWords(); i++ {
		wa := pa.Store.WordAnalysis(authgraph.WordPtr(i))
		if seq[wa.OriginRevisionID] > seq[wa.LatestRevisionID] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Property: "P1-origin-before-latest",
				Message:  fmt.Sprintf("word %d: origin revision %d commits after latest revision %d", i, wa.OriginRevisionID, wa.LatestRevisionID),
			})
		}
	}
	return issues
}

func commitSeqByID(pa *authgraph.PageAnalysis) map[authgraph.RevisionID]int {
	m := make(map[authgraph.RevisionID]int, len(pa.OrderedRevisions))
	for _, id := range pa.OrderedRevisions {
		m[id] = pa.Store.RevisionAnalysis(pa.RevisionsByID[id]).CommitSeq
	}
	return m
}

// checkInboundOutboundSorted verifies property 2.
func checkInboundOutboundSorted(pa *authgraph.PageAnalysis) []Issue {
	committed := committedSet(pa)
	var issues []Issue
	for i := 0; i < pa.Store.NumWords(); i++ {
		wa := pa.Store.WordAnalysis(authgraph.WordPtr(i))
		if !sort.SliceIsSorted(wa.Inbound, func(a, b int) bool { return wa.Inbound[a] < wa.Inbound[b] }) {
			issues = append(issues, Issue{SeverityError, "P2-inbound-sorted", fmt.Sprintf("word %d: inbound not sorted: %v", i, wa.Inbound)})
		}
		if !sort.SliceIsSorted(wa.Outbound, func(a, b int) bool { return wa.Outbound[a] < wa.Outbound[b] }) {
			issues = append(issues, Issue{SeverityError, "P2-outbound-sorted", fmt.Sprintf("word %d: outbound not sorted: %v", i, wa.Outbound)})
		}
		for _, id := range wa.Inbound {
			if _, ok := committed[id]; !ok {
				issues = append(issues, Issue{SeverityError, "P2-inbound-committed", fmt.Sprintf("word %d: inbound revision %d is not committed", i, id)})
			}
		}
		for _, id := range wa.Outbound {
			if _, ok := committed[id]; !ok {
				issues = append(issues, Issue{SeverityError, "P2-outbound-committed", fmt.Sprintf("word %d: outbound revision %d is not committed", i, id)})
			}
		}
	}
	return issues
}

// checkNoMatchedFlagsLeft verifies property 3.
func checkNoMatchedFlagsLeft(pa *authgraph.PageAnalysis) []Issue {
	var issues []Issue
	for i := 0; i < pa.Store.NumParagraphs(); i++ {
		if pa.Store.ParagraphAnalysis(arena.ParagraphPtr(i)).MatchedInCurrent {
			issues = append(issues, Issue{SeverityError, "P3-matched-flag-clear", fmt.Sprintf("paragraph %d still flagged matched_in_current", i)})
		}
	}
	for i := 0; i < pa.Store.NumSentences(); i++ {
		if pa.Store.SentenceAnalysis(arena.SentencePtr(i)).MatchedInCurrent {
			issues = append(issues, Issue{SeverityError, "P3-matched-flag-clear", fmt.Sprintf("sentence %d still flagged matched_in_current", i)})
		}
	}
	for i := 0; i < pa.Store.NumWords(); i++ {
		if pa.Store.WordAnalysis(arena.WordPtr(i)).MatchedInCurrent {
			issues = append(issues, Issue{SeverityError, "P3-matched-flag-clear", fmt.Sprintf("word %d still flagged matched_in_current", i)})
		}
	}
	return issues
}

// checkParagraphHashes verifies property 4: a paragraph's stored hash
// equals the hash of its own text.
func checkParagraphHashes(pa *authgraph.PageAnalysis) []Issue {
	var issues []Issue
	for i := 0; i < pa.Store.NumParagraphs(); i++ {
		rec := pa.Store.Paragraph(arena.ParagraphPtr(i))
		want := authgraph.ContentHash(rec.Text)
		if want != rec.Hash {
			issues = append(issues, Issue{SeverityError, "P4-paragraph-hash", fmt.Sprintf("paragraph %d: stored hash does not match hash(text)", i)})
		}
	}
	return issues
}

// checkParagraphCounts verifies property 5: a revision's ordered
// paragraph list has exactly as many entries as non-empty paragraphs
// produced by splitting its lowercased text.
func checkParagraphCounts(pa *authgraph.PageAnalysis) []Issue {
	var issues []Issue
	for _, id := range pa.OrderedRevisions {
		ptr := pa.RevisionsByID[id]
		rec := pa.Store.Revision(ptr)
		ra := pa.Store.RevisionAnalysis(ptr)
		want := len(split.IntoParagraphs(rec.LowercasedText))
		if len(ra.Paragraphs) != want {
			issues = append(issues, Issue{SeverityError, "P5-paragraph-count", fmt.Sprintf("revision %d: %d paragraphs stored, expected %d", id, len(ra.Paragraphs), want)})
		}
	}
	return issues
}
