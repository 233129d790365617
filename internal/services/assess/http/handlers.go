// Package http provides http transport for the assessment pipeline
package http

import (
	stdhttp "net/http"

	"lifering/internal/modkit/httpkit"
	"lifering/internal/services/assess/domain"
)

// Register mounts the pipeline endpoint on the given router
func Register(r httpkit.Router, s domain.RunnerPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RunInput](r, "/", h.run)
}

type handlers struct{ svc domain.RunnerPort }

// @Summary Assess a comment for crisis risk
// @Tags Assess
// @Accept json
// @Produce json
// @Param payload body domain.RunInput true "Comment"
// @Success 200 {object} domain.Outcome "ok"
// @Router /assess [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	return h.svc.Run(r.Context(), in)
}
