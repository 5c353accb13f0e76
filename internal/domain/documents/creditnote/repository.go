package creditnote

import (
	"context"
	"time"

	"agriaccount/internal/domain/documents"
)

// ListFilter narrows the credit note list.
type ListFilter struct {
	Unit          string
	Number        string // substring match
	GrowerGroupID *int64
	FarmerID      *int64
	Status        string // "" or "ALL" means any
	DateFrom      *time.Time
	DateTo        *time.Time

	Page     int
	PageSize int
}

// Repository defines persistence for credit notes.
//
// The workflow methods (documents.Store) are the only way status and the
// soft-delete flag change; Update deliberately leaves both columns alone.
type Repository interface {
	documents.Store

	Create(ctx context.Context, note *CreditNote) error
	GetByID(ctx context.Context, id int64) (*CreditNote, error)

	// Update rewrites the editable fields of an existing note. Identity,
	// audit stamps, status and the active flag are not touched.
	Update(ctx context.Context, note *CreditNote) error

	// List returns the active notes matching filter, newest first, plus
	// the total match count for pagination.
	List(ctx context.Context, filter ListFilter) ([]*CreditNote, int64, error)
}
