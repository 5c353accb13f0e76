// Package settlement provides the PaymentSettlement document service.
// Settlements pay vendors in PA-numbered batches and track a payment
// status alongside the approval workflow.
package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/documents"
)

// Payment status values, independent of the approval workflow.
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

// Settlement is one vendor payment row within a PA batch.
type Settlement struct {
	documents.Meta

	PANumber string    `db:"pa_number" json:"paNumber"`
	Date     time.Time `db:"settlement_date" json:"settlementDate"`
	Unit     string    `db:"unit" json:"unit"`

	VendorID    int64  `db:"vendor_id" json:"vendorId"`
	VendorName  string `db:"-" json:"vendorName,omitempty"`
	VendorGroup string `db:"vendor_group" json:"vendorGroup,omitempty"`

	PaymentFromKind accounts.Kind `db:"payment_from_type" json:"paymentFromType"`
	PaymentFromID   int64         `db:"payment_from_id" json:"paymentFromId"`

	EntryProfileID *int64 `db:"entry_profile_id" json:"entryProfileId,omitempty"`

	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentStatus string          `db:"payment_status" json:"paymentStatus"`
	PaymentMode   string          `db:"payment_mode" json:"paymentMode,omitempty"`
	RefNo         string          `db:"ref_no" json:"refNo,omitempty"`
	Narration     string          `db:"narration" json:"narration,omitempty"`

	PaymentFromName string `db:"-" json:"paymentFromName,omitempty"`
}

// PaymentFromRef returns the paying account as a reference.
func (s *Settlement) PaymentFromRef() accounts.Reference {
	return accounts.Reference{Kind: s.PaymentFromKind, ID: s.PaymentFromID}
}

// AccountRefs implements accounts.NamePopulator. The credit leg is the
// vendor, the debit leg the paying account.
func (s *Settlement) AccountRefs() (accounts.Reference, accounts.Reference) {
	return accounts.Reference{Kind: accounts.KindVendor, ID: s.VendorID}, s.PaymentFromRef()
}

// SetAccountNames implements accounts.NamePopulator.
func (s *Settlement) SetAccountNames(creditName, debitName string) {
	s.VendorName = creditName
	s.PaymentFromName = debitName
}

// Validate checks row invariants before save.
func (s *Settlement) Validate(ctx context.Context) error {
	if s.Date.IsZero() {
		return apperror.NewValidation("settlement date is required").
			WithDetail("field", "settlementDate")
	}
	if s.VendorID == 0 {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if s.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative").
			WithDetail("field", "amount")
	}
	if s.PaymentFromID != 0 && !s.PaymentFromKind.Valid() {
		return apperror.NewValidation("unknown payment account type").
			WithDetail("value", string(s.PaymentFromKind))
	}
	return nil
}

// BatchGroup is the list view's roll-up of one PA number's rows.
type BatchGroup struct {
	PANumber    string          `json:"paNumber"`
	Date        time.Time       `json:"date"`
	Unit        string          `json:"unit"`
	EntryCount  int             `json:"entryCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Entries     []*Settlement   `json:"entries"`
}
