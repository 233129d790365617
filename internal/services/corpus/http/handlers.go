// Package http provides http transport for the corpus
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"lifering/internal/modkit/httpkit"
	"lifering/internal/services/corpus/domain"
)

// Register mounts corpus endpoints on the given router
func Register(r httpkit.Router, s domain.EditorPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
	httpkit.Post(r, "/{id}/activate", h.activate)
	httpkit.Post(r, "/{id}/archive", h.archive)
	httpkit.PostJSON[domain.ListQuery](r, "/list", h.list)
}

type handlers struct{ svc domain.EditorPort }

// @Summary Create a draft corpus item
// @Tags Corpus
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Item"
// @Success 200 {object} domain.Item "ok"
// @Router /corpus [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	if user, err := httpkit.User(r); err == nil {
		in.CreatedBy = user
	}
	return h.svc.Create(r.Context(), in)
}

// @Summary Fetch one corpus item
// @Tags Corpus
// @Produce json
// @Success 200 {object} domain.Item "ok"
// @Router /corpus/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Edit a corpus item
// @Tags Corpus
// @Accept json
// @Produce json
// @Param payload body domain.UpdateInput true "Changes"
// @Success 200 {object} domain.Item "ok"
// @Router /corpus/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
}

// @Summary Activate a corpus item for retrieval
// @Tags Corpus
// @Produce json
// @Success 200 {object} domain.Item "ok"
// @Router /corpus/{id}/activate [post]
func (h *handlers) activate(r *stdhttp.Request) (any, error) {
	return h.svc.Activate(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Archive a corpus item
// @Tags Corpus
// @Produce json
// @Success 200 {object} domain.Item "ok"
// @Router /corpus/{id}/archive [post]
func (h *handlers) archive(r *stdhttp.Request) (any, error) {
	return h.svc.Archive(r.Context(), chi.URLParam(r, "id"))
}

// @Summary List corpus items
// @Tags Corpus
// @Accept json
// @Produce json
// @Param payload body domain.ListQuery true "Filters"
// @Success 200 {object} domain.ListResult "ok"
// @Router /corpus/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListQuery) (any, error) {
	return h.svc.List(r.Context(), in)
}
