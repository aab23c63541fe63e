package database

import (
	"context"
)

// RevealStore tracks which viewers have revealed a listing's contact
// information during the current viewing window
type RevealStore interface {
	MarkRevealed(ctx context.Context, listingID string, userID uint) error
	IsRevealed(ctx context.Context, listingID string, userID uint) (bool, error)
	Close() error
}
