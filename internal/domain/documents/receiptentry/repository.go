package receiptentry

import (
	"context"
	"time"

	"agriaccount/internal/domain/documents"
)

// ListFilter narrows the voucher listing.
type ListFilter struct {
	Unit          string
	VoucherNo     string
	GrowerGroupID int64
	FarmerID      int64
	Status        documents.Status
	DateFrom      time.Time
	DateTo        time.Time

	Page     int
	PageSize int
}

// Repository persists receipt rows. Status transitions go through the
// embedded documents.Store, never through UpdateRows.
type Repository interface {
	documents.Store

	CreateRows(ctx context.Context, rows []*ReceiptEntry) error
	GetByID(ctx context.Context, id int64) (*ReceiptEntry, error)
	GetByVoucher(ctx context.Context, voucherNo string) ([]*ReceiptEntry, error)
	// ReplaceVoucherRows deactivates the voucher's current rows and
	// inserts the given ones under the same voucher number.
	ReplaceVoucherRows(ctx context.Context, voucherNo string, rows []*ReceiptEntry) error
	List(ctx context.Context, filter ListFilter) ([]*ReceiptEntry, int64, error)
}
