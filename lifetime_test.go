package authgraph

import (
	"reflect"
	"testing"

	"github.com/wikiwho/authgraph/arena"
)

func TestMaybePushInbound_RequestedPushAppendsInbound(t *testing.T) {
	store := arena.New()
	wp := store.AllocateWord(arena.WordRecord{Text: "w"}, 1)
	wa := store.WordAnalysis(wp)
	wa.MatchedInCurrent = true
	wa.LatestRevisionID = 1 // absent from the previous committed revision 2

	maybePushInbound(store, wp, true, 3, 2, true)

	if !reflect.DeepEqual(wa.Inbound, []int32{3}) {
		t.Fatalf("expected inbound [3], got %v", wa.Inbound)
	}
	if wa.LatestRevisionID != 3 {
		t.Fatalf("expected latest revision updated to 3, got %d", wa.LatestRevisionID)
	}
	if wa.MatchedInCurrent {
		t.Fatalf("expected MatchedInCurrent cleared")
	}
}

func TestMaybePushInbound_DiffBoundWordDoesNotReopenInbound(t *testing.T) {
	store := arena.New()
	wp := store.AllocateWord(arena.WordRecord{Text: "w"}, 1)
	wa := store.WordAnalysis(wp)
	wa.MatchedInCurrent = true
	wa.LatestRevisionID = 1 // absent from the previous committed revision 2

	maybePushInbound(store, wp, false, 3, 2, true)

	if len(wa.Inbound) != 0 {
		t.Fatalf("expected no inbound entry for a diff-bound word, got %v", wa.Inbound)
	}
	if wa.LatestRevisionID != 3 {
		t.Fatalf("expected latest revision still updated to 3, got %d", wa.LatestRevisionID)
	}
}

func TestMaybePushInbound_ContinuousPresenceSkipsLatestRevisionID(t *testing.T) {
	store := arena.New()
	wp := store.AllocateWord(arena.WordRecord{Text: "w"}, 1)
	wa := store.WordAnalysis(wp)
	wa.MatchedInCurrent = true
	wa.LatestRevisionID = 1 // equals previousCommittedRevisionID: continuously present

	maybePushInbound(store, wp, true, 2, 1, true)

	if len(wa.Inbound) != 0 {
		t.Fatalf("expected no inbound entry for a continuously present word, got %v", wa.Inbound)
	}
}

func TestMaybePushInbound_UnmatchedLeavesStateAlone(t *testing.T) {
	store := arena.New()
	wp := store.AllocateWord(arena.WordRecord{Text: "w"}, 1)
	wa := store.WordAnalysis(wp)
	wa.MatchedInCurrent = false
	wa.LatestRevisionID = 1

	maybePushInbound(store, wp, true, 2, 1, true)

	if wa.LatestRevisionID != 1 {
		t.Fatalf("expected latest revision untouched for an unmatched word, got %d", wa.LatestRevisionID)
	}
	if len(wa.Inbound) != 0 {
		t.Fatalf("expected no inbound entry for an unmatched word")
	}
}

func TestSweepOutbound_PrefersSentenceSetOverParagraphSet(t *testing.T) {
	store := arena.New()

	sp := store.AllocateSentence(arena.SentenceRecord{})
	wpInSentence := store.AllocateWord(arena.WordRecord{Text: "a"}, 1)
	store.SentenceAnalysis(sp).Words = []arena.WordPtr{wpInSentence}

	pp := store.AllocateParagraph(arena.ParagraphRecord{})
	wpInParagraphOnly := store.AllocateWord(arena.WordRecord{Text: "b"}, 1)
	otherSentence := store.AllocateSentence(arena.SentenceRecord{})
	store.SentenceAnalysis(otherSentence).Words = []arena.WordPtr{wpInParagraphOnly}
	store.ParagraphAnalysis(pp).Sentences = []arena.SentencePtr{otherSentence}

	sweepOutbound(store, []arena.SentencePtr{sp}, []arena.ParagraphPtr{pp}, 5)

	if len(store.WordAnalysis(wpInSentence).Outbound) != 1 {
		t.Fatalf("expected the sentence-set word to receive an outbound entry")
	}
	if len(store.WordAnalysis(wpInParagraphOnly).Outbound) != 0 {
		t.Fatalf("expected the paragraph-only word to be skipped when the sentence set is non-empty")
	}
}

func TestSweepOutbound_FallsBackToParagraphSetWhenSentenceSetEmpty(t *testing.T) {
	store := arena.New()

	pp := store.AllocateParagraph(arena.ParagraphRecord{})
	wp := store.AllocateWord(arena.WordRecord{Text: "b"}, 1)
	sp := store.AllocateSentence(arena.SentenceRecord{})
	store.SentenceAnalysis(sp).Words = []arena.WordPtr{wp}
	store.ParagraphAnalysis(pp).Sentences = []arena.SentencePtr{sp}

	sweepOutbound(store, nil, []arena.ParagraphPtr{pp}, 5)

	if len(store.WordAnalysis(wp).Outbound) != 1 {
		t.Fatalf("expected the paragraph-set word to receive an outbound entry")
	}
}

func TestSweepOutbound_SkipsMatchedWords(t *testing.T) {
	store := arena.New()
	sp := store.AllocateSentence(arena.SentenceRecord{})
	wp := store.AllocateWord(arena.WordRecord{Text: "a"}, 1)
	store.WordAnalysis(wp).MatchedInCurrent = true
	store.SentenceAnalysis(sp).Words = []arena.WordPtr{wp}

	sweepOutbound(store, []arena.SentencePtr{sp}, nil, 5)

	if len(store.WordAnalysis(wp).Outbound) != 0 {
		t.Fatalf("expected a matched word not to receive an outbound entry")
	}
}
