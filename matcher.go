package authgraph

import (
	"strings"

	"github.com/wikiwho/authgraph/arena"
	"github.com/wikiwho/authgraph/diff"
	"github.com/wikiwho/authgraph/split"
)

// matchParagraphs implements match_fragments<Paragraph> (§4.4.2) for the
// per-revision entry point: parent-curr is always the single current
// revision, parent-prev the single previous committed revision (or none).
func matchParagraphs(store *arena.Store, curr arena.RevisionPtr, prev arena.RevisionPtr) (unmatchedCurr, unmatchedPrev, matchedPrev, touched []arena.ParagraphPtr, total int) {
	currRec := store.Revision(curr)
	texts := split.IntoParagraphs(currRec.LowercasedText)
	total = len(texts)

	var prevByHash map[arena.Hash][]arena.ParagraphPtr
	var prevChildren []arena.ParagraphPtr
	if prev != arena.NoRevision {
		pa := store.RevisionAnalysis(prev)
		prevByHash = pa.ParagraphsByHash
		prevChildren = pa.Paragraphs
	}

	currAnalysis := store.RevisionAnalysis(curr)

	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		h := contentHash(text)

		accepted, ok, flagged := acceptParagraphCandidate(store, prevByHash[h])
		touched = append(touched, flagged...)
		if !ok {
			var flagged2 []arena.ParagraphPtr
			accepted, ok, flagged2 = acceptParagraphCandidate(store, store.ParagraphByHash[h])
			touched = append(touched, flagged2...)
		}

		var p arena.ParagraphPtr
		if ok {
			p = accepted
			store.ParagraphAnalysis(p).MatchedInCurrent = true
			touched = append(touched, p)
			matchedPrev = append(matchedPrev, p)
			markParagraphDescendantsMatched(store, p)
		} else {
			p = store.AllocateParagraph(arena.ParagraphRecord{Hash: h, Text: text})
			unmatchedCurr = append(unmatchedCurr, p)
		}

		currAnalysis.Paragraphs = append(currAnalysis.Paragraphs, p)
		currAnalysis.ParagraphsByHash[h] = append(currAnalysis.ParagraphsByHash[h], p)
	}

	for _, p := range prevChildren {
		if !store.ParagraphAnalysis(p).MatchedInCurrent {
			unmatchedPrev = append(unmatchedPrev, p)
		}
	}

	return
}

// acceptParagraphCandidate scans candidates (in insertion order) for the
// first acceptable reuse target, per the three-way rule from §4.4.2 as
// grounded on the reference implementation's find_matching_parasent:
//   - none of its children already matched -> accept it
//   - all of its children already matched -> it is fully consumed
//     elsewhere; flag it (caller must reset later) but do not accept it
//   - some but not all children matched -> skip, untouched
func acceptParagraphCandidate(store *arena.Store, candidates []arena.ParagraphPtr) (accepted arena.ParagraphPtr, ok bool, flagged []arena.ParagraphPtr) {
	for _, c := range candidates {
		pa := store.ParagraphAnalysis(c)
		if pa.MatchedInCurrent {
			continue
		}
		matchedOne, allMatched := paragraphChildState(store, c)
		switch {
		case !matchedOne:
			return c, true, flagged
		case allMatched:
			pa.MatchedInCurrent = true
			flagged = append(flagged, c)
		}
	}
	return arena.NoParagraph, false, flagged
}

func paragraphChildState(store *arena.Store, p arena.ParagraphPtr) (matchedOne, allMatched bool) {
	sentences := store.ParagraphAnalysis(p).Sentences
	if len(sentences) == 0 {
		return false, true
	}
	allMatched = true
	for _, sp := range sentences {
		if store.SentenceAnalysis(sp).MatchedInCurrent {
			matchedOne = true
		} else {
			allMatched = false
		}
	}
	return
}

func markParagraphDescendantsMatched(store *arena.Store, p arena.ParagraphPtr) {
	for _, sp := range store.ParagraphAnalysis(p).Sentences {
		store.SentenceAnalysis(sp).MatchedInCurrent = true
		markSentenceDescendantsMatched(store, sp)
	}
}

// matchSentences implements match_fragments<Sentence> (§4.4.2) over the
// unmatched paragraphs of the current and previous revision.
func matchSentences(store *arena.Store, parasCurr, parasPrev []arena.ParagraphPtr) (unmatchedCurr, unmatchedPrev, matchedPrev, touched []arena.SentencePtr, total int) {
	prevByHash := make(map[arena.Hash][]arena.SentencePtr)
	var prevChildren []arena.SentencePtr
	for _, pp := range parasPrev {
		pa := store.ParagraphAnalysis(pp)
		for h, list := range pa.SentencesByHash {
			prevByHash[h] = append(prevByHash[h], list...)
		}
		prevChildren = append(prevChildren, pa.Sentences...)
	}

	for _, pc := range parasCurr {
		rec := store.Paragraph(pc)
		rawSentences := split.IntoSentences(rec.Text)
		currAnalysis := store.ParagraphAnalysis(pc)

		for _, raw := range rawSentences {
			canon := split.Canonicalize(raw)
			if canon == "" {
				continue
			}
			total++
			h := contentHash(canon)

			accepted, ok, flagged := acceptSentenceCandidate(store, prevByHash[h])
			touched = append(touched, flagged...)
			if !ok {
				var flagged2 []arena.SentencePtr
				accepted, ok, flagged2 = acceptSentenceCandidate(store, store.SentenceByHash[h])
				touched = append(touched, flagged2...)
			}

			var sp arena.SentencePtr
			if ok {
				sp = accepted
				store.SentenceAnalysis(sp).MatchedInCurrent = true
				touched = append(touched, sp)
				matchedPrev = append(matchedPrev, sp)
				markSentenceDescendantsMatched(store, sp)
			} else {
				sp = store.AllocateSentence(arena.SentenceRecord{Hash: h, Text: canon})
				unmatchedCurr = append(unmatchedCurr, sp)
			}

			currAnalysis.Sentences = append(currAnalysis.Sentences, sp)
			currAnalysis.SentencesByHash[h] = append(currAnalysis.SentencesByHash[h], sp)
		}
	}

	for _, sp := range prevChildren {
		if !store.SentenceAnalysis(sp).MatchedInCurrent {
			unmatchedPrev = append(unmatchedPrev, sp)
		}
	}

	return
}

func acceptSentenceCandidate(store *arena.Store, candidates []arena.SentencePtr) (accepted arena.SentencePtr, ok bool, flagged []arena.SentencePtr) {
	for _, c := range candidates {
		sa := store.SentenceAnalysis(c)
		if sa.MatchedInCurrent {
			continue
		}
		matchedOne, allMatched := sentenceChildState(store, c)
		switch {
		case !matchedOne:
			return c, true, flagged
		case allMatched:
			sa.MatchedInCurrent = true
			flagged = append(flagged, c)
		}
	}
	return arena.NoSentence, false, flagged
}

func sentenceChildState(store *arena.Store, s arena.SentencePtr) (matchedOne, allMatched bool) {
	words := store.SentenceAnalysis(s).Words
	if len(words) == 0 {
		return false, true
	}
	allMatched = true
	for _, wp := range words {
		if store.WordAnalysis(wp).MatchedInCurrent {
			matchedOne = true
		} else {
			allMatched = false
		}
	}
	return
}

func markSentenceDescendantsMatched(store *arena.Store, s arena.SentencePtr) {
	for _, wp := range store.SentenceAnalysis(s).Words {
		store.WordAnalysis(wp).MatchedInCurrent = true
	}
}

// matchWords implements match_words (§4.4.3): diff-driven word-level
// matching over the sentences that survived paragraph- and
// sentence-level matching unmatched. Returns spam=true when the
// copy-paste heuristic fires; matchedWordsPrev is the explicit set of
// previous words bound by the diff (as opposed to inherited via a
// matched paragraph/sentence), for the lifetime bookkeeper's
// no-inbound-reopen rule (§4.5).
func matchWords(store *arena.Store, cfg Config, currRevPtr arena.RevisionPtr, sentsCurr, sentsPrev []arena.SentencePtr, possibleVandalism bool, currentRevisionID int32) (spam bool, matchedWordsPrev []arena.WordPtr) {
	type prevWord struct {
		ptr  arena.WordPtr
		text string
	}

	var textPrev []string
	var prevWords []prevWord
	for _, sp := range sentsPrev {
		for _, wp := range store.SentenceAnalysis(sp).Words {
			if !store.WordAnalysis(wp).MatchedInCurrent {
				rec := store.Word(wp)
				textPrev = append(textPrev, rec.Text)
				prevWords = append(prevWords, prevWord{ptr: wp, text: rec.Text})
			}
		}
	}

	type currTok struct {
		sentence arena.SentencePtr
		text     string
	}
	var currToks []currTok
	for _, sp := range sentsCurr {
		rec := store.Sentence(sp)
		if rec.Text == "" {
			continue
		}
		for _, tok := range strings.Split(rec.Text, " ") {
			currToks = append(currToks, currTok{sentence: sp, text: tok})
		}
	}

	if len(currToks) == 0 {
		return false, nil
	}

	if possibleVandalism {
		texts := make([]string, len(currToks))
		for i, t := range currToks {
			texts[i] = t.text
		}
		if avgWordFrequency(texts, cfg) > cfg.CopyPasteFreqThreshold {
			return true, nil
		}
	}

	allocateFresh := func(t currTok) {
		wp := store.AllocateWord(arena.WordRecord{Text: t.text}, currentRevisionID)
		sa := store.SentenceAnalysis(t.sentence)
		sa.Words = append(sa.Words, wp)
		store.RevisionAnalysis(currRevPtr).OriginalAdds++
	}

	if len(textPrev) == 0 {
		for _, t := range currToks {
			allocateFresh(t)
		}
		return false, nil
	}

	currTexts := make([]string, len(currToks))
	for i, t := range currToks {
		currTexts[i] = t.text
	}
	ops := diff.Diff(textPrev, currTexts)
	consumed := make([]bool, len(ops))

	findUnmatchedPrevWord := func(text string) int {
		for i := range prevWords {
			if prevWords[i].text == text && !store.WordAnalysis(prevWords[i].ptr).MatchedInCurrent {
				return i
			}
		}
		return -1
	}

	for _, t := range currToks {
		matched := false
		for i, op := range ops {
			if consumed[i] || op.Token != t.text {
				continue
			}

			switch op.Tag {
			case diff.Insert:
				consumed[i] = true
				allocateFresh(t)
				matched = true

			case diff.Equal:
				boundIdx := findUnmatchedPrevWord(t.text)
				if boundIdx == -1 {
					continue
				}
				wp := prevWords[boundIdx].ptr
				wa := store.WordAnalysis(wp)
				wa.MatchedInCurrent = true
				sa := store.SentenceAnalysis(t.sentence)
				sa.Words = append(sa.Words, wp)
				matchedWordsPrev = append(matchedWordsPrev, wp)
				consumed[i] = true
				matched = true

			case diff.Delete:
				// Side-effect only: retires a previous occurrence
				// (matched_in_current + outbound) without ever becoming
				// the current token's identity, so scanning continues
				// for a later Equal/Insert bind of the same text.
				boundIdx := findUnmatchedPrevWord(t.text)
				if boundIdx == -1 {
					continue
				}
				wp := prevWords[boundIdx].ptr
				wa := store.WordAnalysis(wp)
				wa.MatchedInCurrent = true
				wa.Outbound = append(wa.Outbound, currentRevisionID)
				matchedWordsPrev = append(matchedWordsPrev, wp)
				consumed[i] = true
			}

			if matched {
				break
			}
		}
		if !matched {
			allocateFresh(t)
		}
	}

	return false, matchedWordsPrev
}

// avgWordFrequency implements the copy-paste heuristic's average
// per-token frequency (§4.3 rule 3): total occurrences of interned,
// non-stop tokens divided by the number of distinct such tokens.
func avgWordFrequency(tokens []string, cfg Config) float64 {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		if _, skip := cfg.StopTokens[t]; skip {
			continue
		}
		counts[t]++
	}
	if len(counts) == 0 {
		return 0
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	return float64(total) / float64(len(counts))
}
