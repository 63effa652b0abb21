package todo

import "context"

// Store is the authoritative record store. Implementations run each mutation
// as a single atomic statement; the cache layer is never involved here.
type Store interface {
	// Insert creates a row and returns it with the store-assigned id and
	// defaults populated.
	Insert(ctx context.Context, create CreateTodo) (*Todo, error)

	// SelectAll returns every record in stable id order.
	SelectAll(ctx context.Context) ([]*Todo, error)

	// SelectByID returns the record with the given id, or ErrNotFound.
	SelectByID(ctx context.Context, id int64) (*Todo, error)

	// UpdateByID applies the non-nil patch fields in one statement and
	// returns the resulting row, or ErrNotFound when no row matched.
	UpdateByID(ctx context.Context, id int64, patch UpdateTodo) (*Todo, error)

	// DeleteByID removes the record, or returns ErrNotFound when no row
	// matched.
	DeleteByID(ctx context.Context, id int64) error
}
