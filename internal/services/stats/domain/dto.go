// Package domain holds DTOs for stats http and service contracts
package domain

// TimeRange defines a start and end date for queries
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2026-08-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2026-08-31"`
}

// DecisionsInput buckets assessment outcomes by day
type DecisionsInput struct {
	Range TimeRange `json:"range"`
	// optional filters
	TargetType string `json:"target_type,omitempty" validate:"omitempty,max=50"`
	ModelID    string `json:"model_id,omitempty" validate:"omitempty,max=200"`
}

// DecisionRow is one day/decision bucket
type DecisionRow struct {
	Day      string `json:"day" example:"2026-08-01"`
	Decision string `json:"decision" example:"HELD"`
	Count    int64  `json:"count" example:"42"`
}

// RiskMixInput aggregates classifier output over a window
type RiskMixInput struct {
	Range      TimeRange `json:"range"`
	TargetType string    `json:"target_type,omitempty" validate:"omitempty,max=50"`
}

// RiskMixRow is one risk-level bucket
type RiskMixRow struct {
	RiskLevel     string  `json:"risk_level" example:"high"`
	Count         int64   `json:"count" example:"9"`
	AvgConfidence float64 `json:"avg_confidence" example:"0.84"`
	Layer1Hits    int64   `json:"layer1_hits" example:"3"`
}
