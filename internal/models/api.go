package models

type AnalyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

type AnalyzeResponse struct {
	Entry        HistoryEntry `json:"entry"`
	CacheHit     bool         `json:"cache_hit,omitempty"`
	ResponseTime int          `json:"response_time_ms"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
}
