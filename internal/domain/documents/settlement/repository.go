package settlement

import (
	"context"
	"time"

	"agriaccount/internal/domain/documents"
)

// ListFilter narrows the settlement listing.
type ListFilter struct {
	PANumber      string
	Unit          string
	VendorGroup   string
	VendorName    string
	Status        documents.Status
	PaymentStatus string
	DateFrom      time.Time
	DateTo        time.Time

	Page     int
	PageSize int
}

// Repository persists settlement rows. Approval transitions go through
// the embedded documents.Store; payment status has its own statement.
type Repository interface {
	documents.Store

	CreateRows(ctx context.Context, rows []*Settlement) error
	GetByID(ctx context.Context, id int64) (*Settlement, error)
	GetByPANumber(ctx context.Context, paNumber string) ([]*Settlement, error)
	ReplaceBatchRows(ctx context.Context, paNumber string, rows []*Settlement) error
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, filter ListFilter) ([]*Settlement, int64, error)
}
