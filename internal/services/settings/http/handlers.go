// Package http provides http transport for engine settings
package http

import (
	stdhttp "net/http"

	"lifering/internal/modkit/httpkit"
	"lifering/internal/services/settings/domain"
)

// Register mounts settings endpoints on the given router
func Register(r httpkit.Router, s domain.AdminPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.get)
	httpkit.PutJSON[domain.UpdateInput](r, "/", h.update)
}

type handlers struct{ svc domain.AdminPort }

// @Summary Current engine settings
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.Snapshot "ok"
// @Router /settings [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Snapshot(r.Context())
}

// @Summary Update engine settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body domain.UpdateInput true "Changes"
// @Success 200 {object} domain.Snapshot "ok"
// @Router /settings [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	if user, err := httpkit.User(r); err == nil {
		in.UpdatedBy = user
	}
	return h.svc.Update(r.Context(), in)
}
