package authgraph

import (
	"log/slog"
	"unicode/utf8"

	"github.com/wikiwho/authgraph/arena"
	"github.com/wikiwho/authgraph/split"
)

// Option configures a single AnalysePage call.
type Option func(*engineOptions)

type engineOptions struct {
	logger *slog.Logger
}

// WithLogger overrides the *slog.Logger AnalysePage uses for its one
// debug line per committed or rejected revision. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// AnalysePage runs the full hierarchical matcher over revisions in the
// order given (§4.4.1, §6). Revisions are consumed chronologically;
// each is either committed to the result or rejected by the spam gate.
func AnalysePage(revisions []Revision, cfg Config, opts ...Option) (*PageAnalysis, error) {
	o := engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	store := arena.New()
	spamHashes := make(map[arena.Hash]struct{})

	result := &PageAnalysis{
		Store:           store,
		RevisionsByID:   make(map[RevisionID]arena.RevisionPtr),
		CurrentRevision: arena.NoRevision,
	}

	var prevCommitted arena.RevisionPtr = arena.NoRevision
	havePrevCommitted := false
	var prevCommittedID int32

	for _, r := range revisions {
		if r.Text.Deleted || r.Text.Text == "" {
			continue
		}

		text := r.Text.Text
		length := utf8.RuneCountInString(text)
		h := revisionHash(r.SHA1, text)

		if isHashRepeat(spamHashes, h) {
			result.SpamIDs = append(result.SpamIDs, r.ID)
			o.logger.Debug("authgraph: revision rejected (hash repeat)", "revision_id", r.ID)
			continue
		}

		hasComment := r.Comment != ""
		if havePrevCommitted {
			lengthPrev := store.Revision(prevCommitted).Length
			if isHeavyDeletion(cfg, lengthPrev, length, hasComment, r.Minor) {
				spamHashes[h] = struct{}{}
				result.SpamIDs = append(result.SpamIDs, r.ID)
				o.logger.Debug("authgraph: revision rejected (heavy deletion)", "revision_id", r.ID)
				continue
			}
		}

		snap := store.Snapshot()
		lower := split.ToLowercase(text)
		revPtr := store.AllocateRevision(arena.RevisionRecord{
			ID:             int32(r.ID),
			Length:         length,
			LowercasedText: lower,
			Hash:           h,
			Timestamp:      r.Timestamp,
			Contributor:    arena.Contributor{ID: r.Contributor.ID, Name: r.Contributor.Name},
			Comment:        r.Comment,
			Minor:          r.Minor,
		})

		unmatchedParasCurr, unmatchedParasPrev, matchedParasPrev, touchedParas, totalParas :=
			matchParagraphs(store, revPtr, prevCommitted)

		var unmatchedSentsCurr, unmatchedSentsPrev, matchedSentsPrev, touchedSents []arena.SentencePtr
		if len(unmatchedParasCurr) > 0 {
			unmatchedSentsCurr, unmatchedSentsPrev, matchedSentsPrev, touchedSents, _ =
				matchSentences(store, unmatchedParasCurr, unmatchedParasPrev)
		}

		possibleVandalism := totalParas > 0 && float64(len(unmatchedParasCurr))/float64(totalParas) > 0.0

		var spamWord bool
		var matchedWordsPrev []arena.WordPtr
		if len(unmatchedParasCurr) > 0 {
			spamWord, matchedWordsPrev = matchWords(store, cfg, revPtr, unmatchedSentsCurr, unmatchedSentsPrev, possibleVandalism, int32(r.ID))
		}

		// Sentences under a reused paragraph were flagged as its
		// descendants; reset them along with the matchers' touched lists.
		for _, p := range matchedParasPrev {
			touchedSents = append(touchedSents, store.ParagraphAnalysis(p).Sentences...)
		}

		if spamWord {
			for _, p := range matchedParasPrev {
				for _, wp := range collectWordsUnderParagraph(store, p) {
					store.WordAnalysis(wp).MatchedInCurrent = false
				}
			}
			for _, sp := range matchedSentsPrev {
				for _, wp := range store.SentenceAnalysis(sp).Words {
					store.WordAnalysis(wp).MatchedInCurrent = false
				}
			}
			store.ResetMatchFlags(touchedParas, touchedSents)
			store.TruncateTo(snap)
			spamHashes[h] = struct{}{}
			result.SpamIDs = append(result.SpamIDs, r.ID)
			o.logger.Debug("authgraph: revision rejected (copy-paste)", "revision_id", r.ID)
			continue
		}

		sweepOutbound(store, unmatchedSentsPrev, unmatchedParasPrev, int32(r.ID))
		runLifetimeBookkeeper(store, matchedParasPrev, matchedSentsPrev, matchedWordsPrev, int32(r.ID), prevCommittedID, havePrevCommitted)
		store.ResetMatchFlags(touchedParas, touchedSents)

		for _, p := range unmatchedParasCurr {
			store.IndexParagraph(store.Paragraph(p).Hash, p)
		}
		for _, s := range unmatchedSentsCurr {
			store.IndexSentence(store.Sentence(s).Hash, s)
		}

		ra := store.RevisionAnalysis(revPtr)
		ra.CommitSeq = len(result.OrderedRevisions)

		result.OrderedRevisions = append(result.OrderedRevisions, r.ID)
		result.RevisionsByID[r.ID] = revPtr
		prevCommitted = revPtr
		prevCommittedID = int32(r.ID)
		havePrevCommitted = true

		o.logger.Debug("authgraph: revision committed", "revision_id", r.ID, "original_adds", ra.OriginalAdds)
	}

	if !havePrevCommitted {
		return nil, newAnalysisError(ErrNoValidRevisions)
	}

	result.CurrentRevision = prevCommitted
	return result, nil
}
