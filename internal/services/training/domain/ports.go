package domain

import "context"

// PromoterPort turns reviewed assessments into training rows
type PromoterPort interface {
	// Promote is idempotent per (assessment, batch); re-promoting
	// returns the existing row
	Promote(ctx context.Context, in PromoteInput) (Row, error)
	List(ctx context.Context, q ListQuery) (ListResult, error)
}
