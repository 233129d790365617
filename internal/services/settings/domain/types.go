// Package domain defines the engine settings snapshot and its ports
package domain

import (
	"time"

	"lifering/internal/core/policy"
)

// Snapshot is one versioned copy of the engine configuration.
// The pipeline loads a snapshot at the start of each run; admin updates
// take effect for subsequent runs only, never retroactively
type Snapshot struct {
	Version        int             `json:"version"`
	Enabled        bool            `json:"enabled"`
	ModelID        string          `json:"model_id"`
	TimeoutMs      int             `json:"timeout_ms"`
	RiskThreshold  float64         `json:"risk_threshold"`
	TrainingBatch  string          `json:"training_active_batch"`
	HeldMessage    string          `json:"held_message"`
	RejectMessage  string          `json:"rejected_message"`
	BlocklistTerms []string        `json:"blocklist_terms"`
	Policy         policy.Policy   `json:"policy"`
	FailMode       FailMode        `json:"fail_mode"`
	UpdatedBy      string          `json:"updated_by,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FailMode decides what the pipeline does when the audit write itself fails
type FailMode string

const (
	// FailModeHold parks the comment when the assessment insert fails
	FailModeHold FailMode = "hold"
	// FailModeAllow publishes the comment when the assessment insert fails
	FailModeAllow FailMode = "allow"
)

// Valid reports whether m is a known fail mode
func (m FailMode) Valid() bool { return m == FailModeHold || m == FailModeAllow }

// Timeout returns the layer-3 deadline as a duration
func (s Snapshot) Timeout() time.Duration { return time.Duration(s.TimeoutMs) * time.Millisecond }

// UpdateInput carries an admin settings change. Nil fields keep the
// current value; the version always bumps
type UpdateInput struct {
	Enabled        *bool     `json:"enabled,omitempty"`
	ModelID        *string   `json:"model_id,omitempty" validate:"omitempty,min=1,max=200"`
	TimeoutMs      *int      `json:"timeout_ms,omitempty" validate:"omitempty,min=100,max=120000"`
	RiskThreshold  *float64  `json:"risk_threshold,omitempty" validate:"omitempty,min=0,max=1"`
	TrainingBatch  *string   `json:"training_active_batch,omitempty" validate:"omitempty,max=100"`
	HeldMessage    *string   `json:"held_message,omitempty" validate:"omitempty,max=500"`
	RejectMessage  *string   `json:"rejected_message,omitempty" validate:"omitempty,max=500"`
	BlocklistTerms *[]string `json:"blocklist_terms,omitempty" validate:"omitempty,dive,min=1,max=200"`
	PolicyRules    *string   `json:"policy_rules,omitempty"` // JSON policy document, validated before write
	FailMode       *string   `json:"fail_mode,omitempty" validate:"omitempty,oneof=hold allow"`
	UpdatedBy      string    `json:"-"`
}
