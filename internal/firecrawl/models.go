package firecrawl

// Request models
type ScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats,omitempty"`
}

// ScrapeResponse covers both response shapes the scrape endpoint is known to
// return: a document nested under "data", or a bare document at the top
// level. Exactly one variant is populated per response; Content picks it.
type ScrapeResponse struct {
	Success  *bool           `json:"success,omitempty"`
	Error    string          `json:"error,omitempty"`
	Data     *ScrapeDocument `json:"data,omitempty"`
	Markdown string          `json:"markdown,omitempty"`
}

type ScrapeDocument struct {
	Markdown string          `json:"markdown"`
	HTML     string          `json:"html,omitempty"`
	Metadata *ScrapeMetadata `json:"metadata,omitempty"`
}

type ScrapeMetadata struct {
	Title      string `json:"title,omitempty"`
	SourceURL  string `json:"sourceURL,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// Content resolves the union: nested document first, then the top-level
// field. The second return is false when neither variant carries markdown.
func (r *ScrapeResponse) Content() (string, bool) {
	if r.Data != nil && r.Data.Markdown != "" {
		return r.Data.Markdown, true
	}
	if r.Markdown != "" {
		return r.Markdown, true
	}
	return "", false
}
