// Package domain defines review queue types and ports
package domain

import (
	"time"

	"lifering/internal/core/policy"
)

// QueueItem is one held comment as shown to reviewers
type QueueItem struct {
	CommentID    string           `json:"comment_id"`
	AssessmentID string           `json:"assessment_id"`
	TargetType   string           `json:"target_type,omitempty"`
	RiskLevel    policy.RiskLevel `json:"risk_level"`
	Confidence   float64          `json:"confidence"`
	TextRedacted string           `json:"text_redacted"`
	CreatedAt    time.Time        `json:"created_at"`

	// Display-only reason fields filled by the second fetch
	Layer1Hit string `json:"layer1_hit,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Query filters the held queue
type Query struct {
	RiskLevel     string     `json:"risk_level,omitempty" validate:"omitempty,oneof=unknown low medium high critical"`
	MinConfidence *float64   `json:"min_confidence,omitempty" validate:"omitempty,min=0,max=1"`
	MaxConfidence *float64   `json:"max_confidence,omitempty" validate:"omitempty,min=0,max=1"`
	TargetType    string     `json:"target_type,omitempty" validate:"omitempty,max=50"`
	Since         *time.Time `json:"since,omitempty"`
	Until         *time.Time `json:"until,omitempty"`
	Search        string     `json:"search,omitempty" validate:"omitempty,max=300"`
	Limit         int        `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
	Offset        int        `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// QueueResult is one page plus the unpaged total
type QueueResult struct {
	Items []QueueItem `json:"items"`
	Total int         `json:"total"`
}

// CommentRef names a comment for approve/reject actions
type CommentRef struct {
	CommentID string `json:"comment_id" validate:"required,min=1,max=100"`
}

// LabelInput attaches a human ground-truth label to an assessment
type LabelInput struct {
	AssessmentID string `json:"assessment_id" validate:"required,uuid"`
	Label        string `json:"label" validate:"required,oneof=unknown low medium high critical none"`

	ReviewerID string `json:"-"`
}

// StatusInput flags an assessment for training-set curation
type StatusInput struct {
	AssessmentID string `json:"assessment_id" validate:"required,uuid"`
	Status       string `json:"status" validate:"required,oneof=include exclude pending"`

	ReviewerID string `json:"-"`
}
