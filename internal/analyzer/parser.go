package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veritasmainapp/VERITAS-AI/internal/models"
)

// ParseVerdict decodes a model reply into an AnalysisResult. The reply must
// be a single JSON object; a markdown code fence around it is tolerated,
// prose around it is not. Every verdict field must be present, and every
// text field non-empty. The score range is the model's problem, not ours.
func ParseVerdict(reply string) (*models.AnalysisResult, error) {
	text := extractJSON(reply)
	if text == "" {
		return nil, &MalformedResponseError{Reason: "reply is not a JSON object"}
	}

	var raw struct {
		ProductName     *string `json:"product_name"`
		Score           *int    `json:"score"`
		VerdictBadge    *string `json:"verdict_badge"`
		VerdictSummary  *string `json:"verdict_summary"`
		MarketingClaim  *string `json:"marketing_claim"`
		RealityCheck    *string `json:"reality_check"`
		RedditConsensus *string `json:"reddit_consensus"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &MalformedResponseError{Reason: "reply is not valid JSON", Err: err}
	}

	present := func(s *string) bool {
		return s != nil && strings.TrimSpace(*s) != ""
	}
	checks := []struct {
		field string
		ok    bool
	}{
		{"product_name", present(raw.ProductName)},
		{"score", raw.Score != nil},
		{"verdict_badge", present(raw.VerdictBadge)},
		{"verdict_summary", present(raw.VerdictSummary)},
		{"marketing_claim", present(raw.MarketingClaim)},
		{"reality_check", present(raw.RealityCheck)},
		{"reddit_consensus", present(raw.RedditConsensus)},
	}
	for _, check := range checks {
		if !check.ok {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("reply is missing %s", check.field)}
		}
	}

	return &models.AnalysisResult{
		ProductName:     *raw.ProductName,
		Score:           *raw.Score,
		VerdictBadge:    *raw.VerdictBadge,
		VerdictSummary:  *raw.VerdictSummary,
		MarketingClaim:  *raw.MarketingClaim,
		RealityCheck:    *raw.RealityCheck,
		RedditConsensus: *raw.RedditConsensus,
	}, nil
}

// extractJSON returns the JSON object text inside a reply, or "" when the
// reply is anything other than a bare or fenced object.
func extractJSON(reply string) string {
	text := strings.TrimSpace(reply)

	if strings.HasPrefix(text, "```") {
		idx := strings.Index(text, "\n")
		if idx < 0 {
			return ""
		}
		text = text[idx+1:]
		if end := strings.LastIndex(text, "```"); end >= 0 {
			text = text[:end]
		}
		text = strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}
	return ""
}
