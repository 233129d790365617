// Package http wires stats routes
package http

import (
	"net/http"

	"lifering/internal/modkit/httpkit"
	"lifering/internal/services/stats/domain"
)

// Register mounts the stats routes on r
func Register(r httpkit.Router, svc domain.ReaderPort) {
	httpkit.PostJSON[domain.DecisionsInput](r, "/decisions", decisions(svc))
	httpkit.PostJSON[domain.RiskMixInput](r, "/risk-mix", riskMix(svc))
}

// decisions returns per-day APPROVED/HELD/REJECTED counts
// @Summary Decision timeseries
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.DecisionsInput true "range and filters"
// @Success 200 {array} domain.DecisionRow
// @Router /stats/decisions [post]
func decisions(svc domain.ReaderPort) func(*http.Request, domain.DecisionsInput) (any, error) {
	return func(r *http.Request, in domain.DecisionsInput) (any, error) {
		return svc.Decisions(r.Context(), in)
	}
}

// riskMix returns the risk level distribution
// @Summary Risk level mix
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.RiskMixInput true "range and filters"
// @Success 200 {array} domain.RiskMixRow
// @Router /stats/risk-mix [post]
func riskMix(svc domain.ReaderPort) func(*http.Request, domain.RiskMixInput) (any, error) {
	return func(r *http.Request, in domain.RiskMixInput) (any, error) {
		return svc.RiskMix(r.Context(), in)
	}
}
