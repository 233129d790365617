// Package http provides http transport for the review queue
package http

import (
	stdhttp "net/http"

	"lifering/internal/modkit/httpkit"
	"lifering/internal/services/review/domain"
)

// Service is the combined surface the handlers need
type Service interface {
	domain.QueuePort
	domain.ActionPort
}

// Register mounts review endpoints on the given router
func Register(r httpkit.Router, s Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Query](r, "/queue", h.queue)
	httpkit.PostJSON[domain.CommentRef](r, "/approve", h.approve)
	httpkit.PostJSON[domain.CommentRef](r, "/reject", h.reject)
	httpkit.PostJSON[domain.LabelInput](r, "/label", h.label)
	httpkit.PostJSON[domain.StatusInput](r, "/status", h.status)
}

type handlers struct{ svc Service }

// @Summary Held comments awaiting review
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Filters"
// @Success 200 {object} domain.QueueResult "ok"
// @Router /review/queue [post]
func (h *handlers) queue(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.ListHeld(r.Context(), in)
}

// @Summary Approve a held comment
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.CommentRef true "Comment"
// @Success 200 {object} any "ok"
// @Router /review/approve [post]
func (h *handlers) approve(r *stdhttp.Request, in domain.CommentRef) (any, error) {
	if err := h.svc.Approve(r.Context(), in.CommentID); err != nil {
		return nil, err
	}
	return map[string]string{"comment_id": in.CommentID, "decision": "APPROVED"}, nil
}

// @Summary Reject a held comment and delete its content
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.CommentRef true "Comment"
// @Success 200 {object} any "ok"
// @Router /review/reject [post]
func (h *handlers) reject(r *stdhttp.Request, in domain.CommentRef) (any, error) {
	if err := h.svc.Reject(r.Context(), in.CommentID); err != nil {
		return nil, err
	}
	return map[string]string{"comment_id": in.CommentID, "decision": "REJECTED"}, nil
}

// @Summary Attach a ground-truth label to an assessment
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.LabelInput true "Label"
// @Success 200 {object} any "ok"
// @Router /review/label [post]
func (h *handlers) label(r *stdhttp.Request, in domain.LabelInput) (any, error) {
	if user, err := httpkit.User(r); err == nil {
		in.ReviewerID = user
	}
	if err := h.svc.Label(r.Context(), in); err != nil {
		return nil, err
	}
	return map[string]string{"assessment_id": in.AssessmentID, "label": in.Label}, nil
}

// @Summary Flag an assessment for training-set curation
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.StatusInput true "Status"
// @Success 200 {object} any "ok"
// @Router /review/status [post]
func (h *handlers) status(r *stdhttp.Request, in domain.StatusInput) (any, error) {
	if user, err := httpkit.User(r); err == nil {
		in.ReviewerID = user
	}
	if err := h.svc.MarkReviewed(r.Context(), in); err != nil {
		return nil, err
	}
	return map[string]string{"assessment_id": in.AssessmentID, "status": in.Status}, nil
}
