package authgraph

import "github.com/wikiwho/authgraph/arena"

// isHashRepeat implements the spam gate's first check (§4.3 rule 1): a
// revision whose content hash was already rejected once is rejected
// again without further analysis.
func isHashRepeat(spamHashes map[arena.Hash]struct{}, h arena.Hash) bool {
	_, ok := spamHashes[h]
	return ok
}

// isHeavyDeletion implements the spam gate's second check (§4.3 rule 2).
// lengthPrev/lengthCurr are unicode code point counts of the original
// (non-lowercased) text.
func isHeavyDeletion(cfg Config, lengthPrev, lengthCurr int, hasComment, minor bool) bool {
	if hasComment && minor {
		return false
	}
	if lengthPrev <= cfg.HeavyDeletionFloor {
		return false
	}
	if lengthCurr >= cfg.HeavyDeletionCeiling {
		return false
	}
	ratio := float64(lengthCurr-lengthPrev) / float64(lengthPrev)
	return ratio <= cfg.HeavyDeletionRatio
}
