// Package domain defines corpus item types and ports
package domain

import "time"

// Kind classifies a corpus item
type Kind string

const (
	// KindSlangTerm is a coded or slang risk phrase with an explanation
	KindSlangTerm Kind = "slang-term"
	// KindCaseExample is a labeled real-world comment example
	KindCaseExample Kind = "case-example"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool { return k == KindSlangTerm || k == KindCaseExample }

// Status is the lifecycle state of a corpus item
type Status string

const (
	// StatusDraft items are never served to retrieval
	StatusDraft Status = "draft"
	// StatusActive items are indexed and retrievable
	StatusActive Status = "active"
	// StatusArchived items are removed from the index
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusActive || s == StatusArchived
}

// Item is one corpus entry
type Item struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Status    Status    `json:"status"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Label     string    `json:"label,omitempty"` // risk label for case examples
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInput creates a new draft item
type CreateInput struct {
	Kind    string `json:"kind" validate:"required,oneof=slang-term case-example"`
	Title   string `json:"title" validate:"required,min=1,max=300"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
	Label   string `json:"label,omitempty" validate:"omitempty,max=100"`

	CreatedBy string `json:"-"`
}

// UpdateInput edits an item in place. Nil fields keep the current value
type UpdateInput struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=10000"`
	Label   *string `json:"label,omitempty" validate:"omitempty,max=100"`
}

// ListQuery filters the corpus listing
type ListQuery struct {
	Kind   string `json:"kind,omitempty" validate:"omitempty,oneof=slang-term case-example"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=draft active archived"`
	Search string `json:"search,omitempty" validate:"omitempty,max=300"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
	Offset int    `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// ListResult is one page plus the unpaged total
type ListResult struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}
