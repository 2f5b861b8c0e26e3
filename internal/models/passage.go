package models

// RetrievedPassage is a candidate passage returned by the vector index.
// Produced per query and never persisted.
type RetrievedPassage struct {
	// Text is the passage content.
	Text string `json:"text"`
	// Source identifies the originating document (e.g. a statute filename).
	Source string `json:"source"`
	// SourceType tags the kind of legal source (e.g. "codigo_comercio").
	SourceType string `json:"source_type,omitempty"`
	// Similarity is the raw similarity in [0,1] reported by the index.
	Similarity float64 `json:"similarity"`
}

// ScoredPassage is a retrieved passage with its blended relevance score.
// Invariant: for fixed boosts, Relevance is monotonic in Similarity.
type ScoredPassage struct {
	RetrievedPassage
	Relevance float64 `json:"relevance"`
	Rank      int     `json:"rank"`
}
