// Package receiptentry provides the ReceiptEntry document service.
// Receipts are captured in voucher batches: several rows entered together
// share one RV voucher number but approve and delete individually.
package receiptentry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/documents"
)

// ReceiptEntry is one receipt row within a voucher.
type ReceiptEntry struct {
	documents.Meta

	VoucherNo string    `db:"voucher_no" json:"voucherNo"`
	Date      time.Time `db:"receipt_date" json:"receiptDate"`
	Unit      string    `db:"unit" json:"unit"`

	GrowerGroupID int64 `db:"grower_group_id" json:"growerGroupId"`
	FarmerID      int64 `db:"farmer_id" json:"farmerId"`

	CreditAccountKind accounts.Kind `db:"credit_account_type" json:"creditAccountType"`
	CreditAccountID   int64         `db:"credit_account_id" json:"creditAccountId"`
	DebitAccountKind  accounts.Kind `db:"debit_account_type" json:"debitAccountType"`
	DebitAccountID    int64         `db:"debit_account_id" json:"debitAccountId"`

	EntryProfileID *int64 `db:"entry_profile_id" json:"entryProfileId,omitempty"`

	Amount      decimal.Decimal `db:"amount" json:"amount"`
	PaymentMode string          `db:"payment_mode" json:"paymentMode,omitempty"` // Cash, Cheque, UTR
	RefNo       string          `db:"ref_no" json:"refNo,omitempty"`
	Narration   string          `db:"narration" json:"narration,omitempty"`

	CreditAccountName string `db:"-" json:"creditAccountName,omitempty"`
	DebitAccountName  string `db:"-" json:"debitAccountName,omitempty"`
}

// CreditRef returns the credit leg as an account reference.
func (r *ReceiptEntry) CreditRef() accounts.Reference {
	return accounts.Reference{Kind: r.CreditAccountKind, ID: r.CreditAccountID}
}

// DebitRef returns the debit leg as an account reference.
func (r *ReceiptEntry) DebitRef() accounts.Reference {
	return accounts.Reference{Kind: r.DebitAccountKind, ID: r.DebitAccountID}
}

// AccountRefs implements accounts.NamePopulator.
func (r *ReceiptEntry) AccountRefs() (accounts.Reference, accounts.Reference) {
	return r.CreditRef(), r.DebitRef()
}

// SetAccountNames implements accounts.NamePopulator.
func (r *ReceiptEntry) SetAccountNames(creditName, debitName string) {
	r.CreditAccountName = creditName
	r.DebitAccountName = debitName
}

// Validate checks row invariants before save.
func (r *ReceiptEntry) Validate(ctx context.Context) error {
	if r.Date.IsZero() {
		return apperror.NewValidation("receipt date is required").
			WithDetail("field", "receiptDate")
	}
	if r.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative").
			WithDetail("field", "amount")
	}
	if r.CreditAccountID != 0 && !r.CreditAccountKind.Valid() {
		return apperror.NewValidation("unknown credit account type").
			WithDetail("value", string(r.CreditAccountKind))
	}
	if r.DebitAccountID != 0 && !r.DebitAccountKind.Valid() {
		return apperror.NewValidation("unknown debit account type").
			WithDetail("value", string(r.DebitAccountKind))
	}
	return nil
}

// VoucherGroup is the list view's roll-up of one voucher's rows.
type VoucherGroup struct {
	VoucherNo   string          `json:"voucherNo"`
	Date        time.Time       `json:"date"`
	Unit        string          `json:"unit"`
	EntryCount  int             `json:"entryCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Entries     []*ReceiptEntry `json:"entries"`
}
