// Package models defines core data structures for questions, documents, and responses.
package models

import (
	"fmt"
	"strings"
)

// DefaultMaxQuestionLength bounds question text when no limit is configured.
const DefaultMaxQuestionLength = 2000

// RequesterProfile describes the organization asking the question.
// All fields are optional; empty values mean "not provided".
type RequesterProfile struct {
	CompanyType string `json:"company_type,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Employees   int    `json:"employees,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Question is the immutable input for a single query.
type Question struct {
	Text      string            `json:"question"`
	Context   string            `json:"context,omitempty"`
	Profile   *RequesterProfile `json:"profile,omitempty"`
	Documents []*UserDocument   `json:"documents,omitempty"`
}

// Validate checks the question text against maxLen (0 means DefaultMaxQuestionLength).
// Rejecting an empty or over-long question is the only caller-visible error the
// engine produces; everything downstream degrades instead of failing.
func (q *Question) Validate(maxLen int) error {
	if maxLen <= 0 {
		maxLen = DefaultMaxQuestionLength
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if len(q.Text) > maxLen {
		return fmt.Errorf("question exceeds maximum length of %d characters", maxLen)
	}
	return nil
}
