// Package domain defines training promotion types and ports
package domain

import (
	"encoding/json"
	"time"

	"lifering/internal/core/prompt"
)

// CorrectedOutput is the reviewer-supplied ground truth for one example.
// It mirrors the classifier's wire schema so exports stay symmetrical
type CorrectedOutput struct {
	RiskLevel  string   `json:"risk_level" validate:"required,oneof=low medium high critical"`
	Confidence *float64 `json:"confidence" validate:"required,min=0,max=1"`
	Reason     string   `json:"reason" validate:"required,min=1,max=2000"`
}

// Row is one promoted training example
type Row struct {
	ID                 string           `json:"id"`
	SourceAssessmentID string           `json:"source_assessment_id"`
	DatasetBatch       string           `json:"dataset_batch"`
	InputMessages      []prompt.Message `json:"input_messages"`
	CorrectedOutput    CorrectedOutput  `json:"corrected_output"`
	ReviewerID         string           `json:"reviewer_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// PromoteInput promotes one reviewed assessment into the active batch
type PromoteInput struct {
	AssessmentID string          `json:"assessment_id" validate:"required,uuid"`
	Corrected    json.RawMessage `json:"corrected_output" validate:"required"`

	ReviewerID string `json:"-"`
}

// ListQuery pages promoted rows for export
type ListQuery struct {
	Batch  string `json:"batch,omitempty" validate:"omitempty,max=100"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
	Offset int    `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// ListResult is one page plus the unpaged total
type ListResult struct {
	Items []Row `json:"items"`
	Total int   `json:"total"`
}
