// Package http provides http transport for training promotion
package http

import (
	stdhttp "net/http"

	"lifering/internal/modkit/httpkit"
	"lifering/internal/services/training/domain"
)

// Register mounts training endpoints on the given router
func Register(r httpkit.Router, s domain.PromoterPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.PromoteInput](r, "/promote", h.promote)
	httpkit.PostJSON[domain.ListQuery](r, "/rows", h.list)
}

type handlers struct{ svc domain.PromoterPort }

// @Summary Promote a reviewed assessment into the active batch
// @Tags Training
// @Accept json
// @Produce json
// @Param payload body domain.PromoteInput true "Promotion"
// @Success 200 {object} domain.Row "ok"
// @Router /training/promote [post]
func (h *handlers) promote(r *stdhttp.Request, in domain.PromoteInput) (any, error) {
	if user, err := httpkit.User(r); err == nil {
		in.ReviewerID = user
	}
	return h.svc.Promote(r.Context(), in)
}

// @Summary List promoted training rows
// @Tags Training
// @Accept json
// @Produce json
// @Param payload body domain.ListQuery true "Filters"
// @Success 200 {object} domain.ListResult "ok"
// @Router /training/rows [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListQuery) (any, error) {
	return h.svc.List(r.Context(), in)
}
