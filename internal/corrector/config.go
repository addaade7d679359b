package corrector

// CorrectorConfig tunes the unknown-word correction.
type CorrectorConfig struct {
	// SuggestMaxEditDistance bounds the per-word suggestion used when a
	// token splits on punctuation.
	SuggestMaxEditDistance int
	// SegmentationMaxEditDistance bounds corrections inside segmentation.
	SegmentationMaxEditDistance int
	// TieBreak decides between the Vietnamese segmentation hypotheses.
	TieBreak TieBreak
}

// DefaultConfig matches the reference English and Vietnamese setups.
func DefaultConfig() CorrectorConfig {
	return CorrectorConfig{
		SuggestMaxEditDistance:      2,
		SegmentationMaxEditDistance: 2,
		TieBreak:                    LegacyTieBreak,
	}
}

// Stage names the step that produced a correction.
type Stage string

const (
	// StageSplit: every punctuation-separated part was a known word or had
	// a suggestion.
	StageSplit Stage = "split"
	// StageSegment: the noise-reduced token was segmented.
	StageSegment Stage = "segment"
	// StageSegmentAccentless: the diacritic-free segmentation won and its
	// boundaries were applied to the accented token.
	StageSegmentAccentless Stage = "segment_accentless"
)

type CorrectionResult struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Stage     Stage  `json:"stage"`
	// DistanceSum and ProbLogSum describe the chosen segmentation.
	DistanceSum int     `json:"distance_sum,omitempty"`
	ProbLogSum  float64 `json:"prob_log_sum,omitempty"`
}
