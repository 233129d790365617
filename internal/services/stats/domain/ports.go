package domain

import "context"

// ReaderPort serves the admin dashboard aggregates
type ReaderPort interface {
	Decisions(ctx context.Context, in DecisionsInput) ([]DecisionRow, error)
	RiskMix(ctx context.Context, in RiskMixInput) ([]RiskMixRow, error)
}
