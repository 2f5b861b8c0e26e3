package models

import "time"

// Document statuses. Only ready documents participate in matching.
const (
	DocumentStatusReady      = "ready"
	DocumentStatusProcessing = "processing"
	DocumentStatusFailed     = "failed"
)

// UserDocument is a requester-owned document with extracted text content.
// The engine only reads these records; upload, storage, and text extraction
// belong to external collaborators.
type UserDocument struct {
	ID        string    `json:"id,omitempty" db:"id"`
	OwnerID   string    `json:"owner_id,omitempty" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Content   string    `json:"content" db:"content"`
	FileType  string    `json:"file_type,omitempty" db:"file_type"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Ready reports whether the document is eligible for matching.
func (d *UserDocument) Ready() bool {
	return d.Status == DocumentStatusReady
}

// MatchedDocument is a user document that lexically overlaps the question.
type MatchedDocument struct {
	Document *UserDocument `json:"document"`
	// MatchScore is the count of question tokens found in name+content.
	MatchScore int `json:"match_score"`
	// Excerpt is a bounded prefix of the content used for prompt building.
	Excerpt string `json:"excerpt"`
}
