package analyzer

import "fmt"

// verdictPrompt is the instruction sent to the model for every scan. It
// pins the reply to one JSON object so the parser has a fighting chance.
const verdictPrompt = `Analyze this product link: %s
Page Text: %s

This is likely from Amazon, Temu, or TikTok Shop.
Look for:
- Dropshipping scams (Generic items sold at a markup)
- Fake reviews or "too good to be true" claims
- TikTok Shop specific red flags (Viral junk, shipping delays)

Return a purely JSON response with this exact structure:
{
    "product_name": "Short name of product",
    "score": (0-100 integer, where 100 is a trustworthy purchase),
    "verdict_badge": "HARD PASS" or "BUY IT",
    "verdict_summary": "One sentence verdict",
    "marketing_claim": "What the seller promises",
    "reality_check": "What the product actually is",
    "reddit_consensus": "What real users likely say about it"
}`

// BuildPrompt fills the verdict prompt with the submitted link and its
// page text.
func BuildPrompt(url, pageText string) string {
	return fmt.Sprintf(verdictPrompt, url, pageText)
}
