package dto

import (
	"time"

	"agriaccount/internal/domain/documents"
	"agriaccount/internal/domain/documents/creditnote"
	"agriaccount/internal/domain/documents/receiptentry"
	"agriaccount/internal/domain/documents/settlement"
)

// --- Credit notes ---

// CreditNoteFilter binds credit note list query parameters.
type CreditNoteFilter struct {
	PaginationRequest
	Unit          string     `form:"unit"`
	Number        string     `form:"number"`
	GrowerGroupID *int64     `form:"growerGroupId"`
	FarmerID      *int64     `form:"farmerId"`
	Status        string     `form:"status"`
	DateFrom      *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// ToFilter converts to the domain list filter.
func (f *CreditNoteFilter) ToFilter() creditnote.ListFilter {
	f.Defaults()
	return creditnote.ListFilter{
		Unit:          f.Unit,
		Number:        f.Number,
		GrowerGroupID: f.GrowerGroupID,
		FarmerID:      f.FarmerID,
		Status:        f.Status,
		DateFrom:      f.DateFrom,
		DateTo:        f.DateTo,
		Page:          f.Page,
		PageSize:      f.PageSize,
	}
}

// --- Receipt vouchers ---

// ReceiptEntryFilter binds receipt voucher list query parameters.
type ReceiptEntryFilter struct {
	PaginationRequest
	Unit          string     `form:"unit"`
	VoucherNo     string     `form:"voucherNo"`
	GrowerGroupID int64      `form:"growerGroupId"`
	FarmerID      int64      `form:"farmerId"`
	Status        string     `form:"status"`
	DateFrom      *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// ToFilter converts to the domain list filter.
func (f *ReceiptEntryFilter) ToFilter() receiptentry.ListFilter {
	f.Defaults()
	filter := receiptentry.ListFilter{
		Unit:          f.Unit,
		VoucherNo:     f.VoucherNo,
		GrowerGroupID: f.GrowerGroupID,
		FarmerID:      f.FarmerID,
		Status:        documents.Status(f.Status),
		Page:          f.Page,
		PageSize:      f.PageSize,
	}
	if f.DateFrom != nil {
		filter.DateFrom = *f.DateFrom
	}
	if f.DateTo != nil {
		filter.DateTo = *f.DateTo
	}
	return filter
}

// ReceiptVoucherRequest carries the rows of one receipt voucher.
type ReceiptVoucherRequest struct {
	Entries []*receiptentry.ReceiptEntry `json:"entries" binding:"required"`
}

// --- Payment settlements ---

// SettlementFilter binds settlement list query parameters.
type SettlementFilter struct {
	PaginationRequest
	PANumber      string     `form:"paNumber"`
	Unit          string     `form:"unit"`
	VendorGroup   string     `form:"vendorGroup"`
	VendorName    string     `form:"vendorName"`
	Status        string     `form:"status"`
	PaymentStatus string     `form:"paymentStatus"`
	DateFrom      *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// ToFilter converts to the domain list filter.
func (f *SettlementFilter) ToFilter() settlement.ListFilter {
	f.Defaults()
	filter := settlement.ListFilter{
		PANumber:      f.PANumber,
		Unit:          f.Unit,
		VendorGroup:   f.VendorGroup,
		VendorName:    f.VendorName,
		Status:        documents.Status(f.Status),
		PaymentStatus: f.PaymentStatus,
		Page:          f.Page,
		PageSize:      f.PageSize,
	}
	if f.DateFrom != nil {
		filter.DateFrom = *f.DateFrom
	}
	if f.DateTo != nil {
		filter.DateTo = *f.DateTo
	}
	return filter
}

// SettlementBatchRequest carries the rows of one settlement batch.
type SettlementBatchRequest struct {
	Entries []*settlement.Settlement `json:"entries" binding:"required"`
}
