package authgraph

import (
	"testing"

	"github.com/wikiwho/authgraph/arena"
)

func newSentenceWithWords(store *arena.Store, matched ...bool) arena.SentencePtr {
	sp := store.AllocateSentence(arena.SentenceRecord{})
	sa := store.SentenceAnalysis(sp)
	for _, m := range matched {
		wp := store.AllocateWord(arena.WordRecord{Text: "w"}, 1)
		store.WordAnalysis(wp).MatchedInCurrent = m
		sa.Words = append(sa.Words, wp)
	}
	return sp
}

func TestAcceptSentenceCandidate_NoneMatchedAccepts(t *testing.T) {
	store := arena.New()
	sp := newSentenceWithWords(store, false, false)

	accepted, ok, flagged := acceptSentenceCandidate(store, []arena.SentencePtr{sp})
	if !ok || accepted != sp {
		t.Fatalf("expected sentence %d accepted, got ok=%v accepted=%d", sp, ok, accepted)
	}
	if len(flagged) != 0 {
		t.Fatalf("expected no flagged sentences, got %v", flagged)
	}
}

func TestAcceptSentenceCandidate_AllMatchedFlagsNotAccepts(t *testing.T) {
	store := arena.New()
	sp := newSentenceWithWords(store, true, true)

	_, ok, flagged := acceptSentenceCandidate(store, []arena.SentencePtr{sp})
	if ok {
		t.Fatalf("expected no acceptance for a fully-matched candidate")
	}
	if len(flagged) != 1 || flagged[0] != sp {
		t.Fatalf("expected sentence %d flagged, got %v", sp, flagged)
	}
	if !store.SentenceAnalysis(sp).MatchedInCurrent {
		t.Fatalf("expected MatchedInCurrent set on flagged sentence")
	}
}

func TestAcceptSentenceCandidate_PartialMatchSkipsEntirely(t *testing.T) {
	store := arena.New()
	sp := newSentenceWithWords(store, true, false)

	_, ok, flagged := acceptSentenceCandidate(store, []arena.SentencePtr{sp})
	if ok {
		t.Fatalf("expected no acceptance for a partially-matched candidate")
	}
	if len(flagged) != 0 {
		t.Fatalf("expected no flagging for a partially-matched candidate, got %v", flagged)
	}
	if store.SentenceAnalysis(sp).MatchedInCurrent {
		t.Fatalf("expected MatchedInCurrent left untouched on a skipped candidate")
	}
}

func TestAcceptSentenceCandidate_SkipsAlreadyMatchedCandidate(t *testing.T) {
	store := arena.New()
	sp := newSentenceWithWords(store, false)
	store.SentenceAnalysis(sp).MatchedInCurrent = true

	accepted, ok, flagged := acceptSentenceCandidate(store, []arena.SentencePtr{sp})
	if ok {
		t.Fatalf("expected no acceptance for an already-matched candidate, got %d", accepted)
	}
	if len(flagged) != 0 {
		t.Fatalf("expected no flagging for an already-matched candidate")
	}
}

func TestAcceptSentenceCandidate_ScansPastSkippedToFindAccept(t *testing.T) {
	store := arena.New()
	partial := newSentenceWithWords(store, true, false)
	clean := newSentenceWithWords(store, false)

	accepted, ok, _ := acceptSentenceCandidate(store, []arena.SentencePtr{partial, clean})
	if !ok || accepted != clean {
		t.Fatalf("expected the clean candidate %d accepted, got ok=%v accepted=%d", clean, ok, accepted)
	}
}

func TestAvgWordFrequency(t *testing.T) {
	cfg := DefaultConfig()
	tokens := []string{"foo", "foo", "foo", "bar"}
	got := avgWordFrequency(tokens, cfg)
	want := float64(4) / float64(2) // two distinct tokens, four occurrences
	if got != want {
		t.Fatalf("avgWordFrequency = %v, want %v", got, want)
	}
}

func TestAvgWordFrequency_ExcludesStopTokens(t *testing.T) {
	cfg := DefaultConfig()
	tokens := []string{"<", "<", "<", "real"}
	got := avgWordFrequency(tokens, cfg)
	if got != 1 {
		t.Fatalf("avgWordFrequency with stop tokens = %v, want 1", got)
	}
}

func TestAvgWordFrequency_EmptyYieldsZero(t *testing.T) {
	cfg := DefaultConfig()
	if got := avgWordFrequency(nil, cfg); got != 0 {
		t.Fatalf("avgWordFrequency(nil) = %v, want 0", got)
	}
}
