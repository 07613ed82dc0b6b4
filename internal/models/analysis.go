package models

// AnalysisResult is the structured verdict returned by the language model
// for one product listing. The JSON field names are part of the prompt
// contract and must not change.
type AnalysisResult struct {
	ProductName     string `json:"product_name"`
	Score           int    `json:"score"`
	VerdictBadge    string `json:"verdict_badge"`
	VerdictSummary  string `json:"verdict_summary"`
	MarketingClaim  string `json:"marketing_claim"`
	RealityCheck    string `json:"reality_check"`
	RedditConsensus string `json:"reddit_consensus"`
}

// Score is intended to be 0-100 but the model is not forced to comply;
// anything above this floor is displayed as a positive result.
const trustScoreFloor = 70

const (
	scoreColorGood = "#28a745"
	scoreColorWarn = "#dc3545"
)

// Trusted reports whether the score clears the display threshold.
func (r AnalysisResult) Trusted() bool {
	return r.Score > trustScoreFloor
}

// ScoreColor returns the display color for the verdict score.
func (r AnalysisResult) ScoreColor() string {
	if r.Trusted() {
		return scoreColorGood
	}
	return scoreColorWarn
}
