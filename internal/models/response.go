package models

// FallbackSource labels the provenance when neither legal passages nor user
// documents backed the answer.
const FallbackSource = "Legislación Colombiana"

// QueryAnalysis is observability metadata about how the question was handled.
// Every field is always populated; unknown values are explicit empties.
type QueryAnalysis struct {
	OriginalQuestion  string   `json:"original_question"`
	ProcessedQuestion string   `json:"processed_question"`
	Category          string   `json:"category"`
	QueryType         string   `json:"query_type"`
	Complexity        string   `json:"complexity"`
	Entities          []string `json:"entities"`
	ProcessingTimeMS  int64    `json:"total_processing_time_ms"`
}

// ResponseEnvelope is the complete result of one query. It is constructed once
// per request and returned; the core never stores it.
type ResponseEnvelope struct {
	QueryID string `json:"query_id"`
	Answer  string `json:"answer"`
	// Sources is the deduplicated provenance list, legal sources before user
	// document labels, with FallbackSource when both are empty.
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
	Category   string   `json:"category"`
	QueryType  string   `json:"query_type"`
	// UsedDocuments are the names of the requester documents that informed the answer.
	UsedDocuments  []string      `json:"used_documents"`
	ResponseTimeMS int64         `json:"response_time_ms"`
	TokensUsed     int           `json:"tokens_used"`
	FromCache      bool          `json:"from_cache,omitempty"`
	Analysis       QueryAnalysis `json:"query_analysis"`
	RelatedQueries []string      `json:"related_queries"`
}
