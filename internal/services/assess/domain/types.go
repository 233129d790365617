// Package domain defines assessment types and ports
package domain

import (
	"time"

	"lifering/internal/core/policy"
)

// ContextRef is one retrieved corpus snippet as the classifier saw it
type ContextRef struct {
	Label   string  `json:"label"`
	Content string  `json:"content"`
	Kind    string  `json:"kind"`
	Score   float64 `json:"score"`
}

// Assessment is one evaluation of one comment. Decision-relevant fields
// never change after insert; only the human review fields may be set later.
// The row outlives the comment it assessed
type Assessment struct {
	ID         string `json:"id"`
	CommentID  string `json:"comment_id"`
	TargetType string `json:"target_type,omitempty"`

	TextRaw      string `json:"-"`
	TextRedacted string `json:"text_redacted"`

	Layer1Hit     string       `json:"layer1_hit,omitempty"` // matched term or empty
	Layer2Context []ContextRef `json:"layer2_context"`

	Provider   string           `json:"provider"`
	ModelID    string           `json:"model_id"`
	RiskLevel  policy.RiskLevel `json:"risk_level"`
	Confidence float64          `json:"confidence"`
	Reason     string           `json:"reason"`

	Decision        policy.Decision `json:"decision"`
	SettingsVersion int             `json:"settings_version"`
	LatencyMs       int             `json:"latency_ms"`
	CreatedAt       time.Time       `json:"created_at"`

	HumanLabel   string     `json:"human_label,omitempty"`
	ReviewStatus string     `json:"review_status,omitempty"`
	ReviewedBy   string     `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

// Pointer is the latest-decision cache keyed by comment. It is
// rebuildable from the assessment log and must be treated as such
type Pointer struct {
	CommentID    string           `json:"comment_id"`
	AssessmentID string           `json:"assessment_id"`
	TargetType   string           `json:"target_type,omitempty"`
	Decision     policy.Decision  `json:"decision"`
	RiskLevel    policy.RiskLevel `json:"risk_level"`
	Confidence   float64          `json:"confidence"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// RunInput is one comment submitted to the pipeline
type RunInput struct {
	CommentID  string `json:"comment_id" validate:"required,min=1,max=100"`
	TargetType string `json:"target_type,omitempty" validate:"omitempty,max=50"`
	Text       string `json:"text" validate:"required,min=1,max=20000"`
}

// Outcome is what the submitting caller gets back
type Outcome struct {
	AssessmentID string          `json:"assessment_id,omitempty"`
	Decision     policy.Decision `json:"decision"`
	// Message is the submitter-facing text for held/rejected outcomes
	Message string `json:"message,omitempty"`
}
