package authgraph

// Config holds tunable thresholds for the spam gate. Zero-value fields
// are not auto-defaulted; use DefaultConfig for the spec's literal
// constants and override individual fields as needed.
type Config struct {
	// HeavyDeletionRatio is the length-change ratio threshold for the
	// heavy-deletion heuristic (§4.3 rule 2). A revision is a candidate
	// for rejection when (L_curr-L_prev)/L_prev <= HeavyDeletionRatio.
	HeavyDeletionRatio float64 `json:"heavy_deletion_ratio" yaml:"heavy_deletion_ratio"`

	// HeavyDeletionFloor is the previous-revision length (in unicode code
	// points) that must be exceeded for the heavy-deletion heuristic to
	// apply (the spec's "L_prev > 1000").
	HeavyDeletionFloor int `json:"heavy_deletion_floor" yaml:"heavy_deletion_floor"`

	// HeavyDeletionCeiling is the maximum current-revision length for the
	// heuristic to apply (the spec's "L_curr < 1000").
	HeavyDeletionCeiling int `json:"heavy_deletion_ceiling" yaml:"heavy_deletion_ceiling"`

	// CopyPasteFreqThreshold is the maximum tolerated average per-token
	// frequency before a revision with any unmatched paragraph is
	// rejected as copy-paste spam (§4.3 rule 3).
	CopyPasteFreqThreshold float64 `json:"copy_paste_freq_threshold" yaml:"copy_paste_freq_threshold"`

	// StopTokens are excluded from the copy-paste average-frequency
	// computation.
	StopTokens map[string]struct{} `json:"-" yaml:"-"`
}

// DefaultConfig returns the spec's literal constants (§4.3).
func DefaultConfig() Config {
	return Config{
		HeavyDeletionRatio:     -0.40,
		HeavyDeletionFloor:     1000,
		HeavyDeletionCeiling:   1000,
		CopyPasteFreqThreshold: 20.0,
		StopTokens:             defaultStopTokens(),
	}
}

func defaultStopTokens() map[string]struct{} {
	tokens := []string{"<", ">", "tr", "td", "[", "]", `"`, "*", "==", "{", "}", "|", "-"}
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}
