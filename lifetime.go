package authgraph

import "github.com/wikiwho/authgraph/arena"

// maybePushInbound implements the inbound policy of §4.5. requestPush is
// true for words inherited via a matched-prev paragraph or sentence, and
// false for words bound directly by the word-level diff
// (matched_words_prev), which must not reopen an inbound entry.
func maybePushInbound(store *arena.Store, wp arena.WordPtr, requestPush bool, currentRevisionID, previousCommittedRevisionID int32, havePreviousCommitted bool) {
	wa := store.WordAnalysis(wp)
	if wa.MatchedInCurrent {
		lastOutbound, hasOutbound := int32(0), len(wa.Outbound) > 0
		if hasOutbound {
			lastOutbound = wa.Outbound[len(wa.Outbound)-1]
		}
		if !hasOutbound || lastOutbound != currentRevisionID {
			if requestPush && (!havePreviousCommitted || wa.LatestRevisionID != previousCommittedRevisionID) {
				wa.Inbound = append(wa.Inbound, currentRevisionID)
			}
			wa.LatestRevisionID = currentRevisionID
		}
	}
	wa.MatchedInCurrent = false
}

// collectWordsUnderParagraph walks every sentence of p and returns every
// word it currently contains.
func collectWordsUnderParagraph(store *arena.Store, p arena.ParagraphPtr) []arena.WordPtr {
	var words []arena.WordPtr
	for _, sp := range store.ParagraphAnalysis(p).Sentences {
		words = append(words, store.SentenceAnalysis(sp).Words...)
	}
	return words
}

// sweepOutbound implements the outbound policy of §4.4.1 step 5: every
// word under the given sentences (falling back to the words under the
// given paragraphs when the sentence set is empty) that is not currently
// matched gets an outbound entry for this revision.
func sweepOutbound(store *arena.Store, unmatchedSentencesPrev []arena.SentencePtr, unmatchedParagraphsPrev []arena.ParagraphPtr, currentRevisionID int32) {
	var words []arena.WordPtr
	for _, sp := range unmatchedSentencesPrev {
		words = append(words, store.SentenceAnalysis(sp).Words...)
	}
	if len(words) == 0 {
		for _, pp := range unmatchedParagraphsPrev {
			words = append(words, collectWordsUnderParagraph(store, pp)...)
		}
	}

	for _, wp := range words {
		wa := store.WordAnalysis(wp)
		if !wa.MatchedInCurrent {
			wa.Outbound = append(wa.Outbound, currentRevisionID)
		}
	}
}

// runLifetimeBookkeeper implements §4.5 for one committed revision.
func runLifetimeBookkeeper(store *arena.Store, matchedParagraphsPrev []arena.ParagraphPtr, matchedSentencesPrev []arena.SentencePtr, matchedWordsPrev []arena.WordPtr, currentRevisionID, previousCommittedRevisionID int32, havePreviousCommitted bool) {
	for _, p := range matchedParagraphsPrev {
		for _, wp := range collectWordsUnderParagraph(store, p) {
			maybePushInbound(store, wp, true, currentRevisionID, previousCommittedRevisionID, havePreviousCommitted)
		}
	}
	for _, sp := range matchedSentencesPrev {
		for _, wp := range store.SentenceAnalysis(sp).Words {
			maybePushInbound(store, wp, true, currentRevisionID, previousCommittedRevisionID, havePreviousCommitted)
		}
	}
	for _, wp := range matchedWordsPrev {
		maybePushInbound(store, wp, false, currentRevisionID, previousCommittedRevisionID, havePreviousCommitted)
	}
}
