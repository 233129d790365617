package domain

import "context"

// EditorPort is the full corpus lifecycle surface
type EditorPort interface {
	Create(ctx context.Context, in CreateInput) (Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Update(ctx context.Context, id string, in UpdateInput) (Item, error)
	// Activate makes an item retrievable and schedules indexing
	Activate(ctx context.Context, id string) (Item, error)
	// Archive hides an item and schedules index removal
	Archive(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, q ListQuery) (ListResult, error)
}
