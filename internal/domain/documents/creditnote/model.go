// Package creditnote provides the CreditNote document service.
// Credit notes credit a grower or bank counterparty against a debit leg.
package creditnote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/documents"
)

// CreditNote is one credit note document. The counterparty legs are stored
// as polymorphic (kind, id) pairs; the *Name fields are read-time caches
// filled by the resolver, never persisted.
type CreditNote struct {
	documents.Meta

	Number string    `db:"credit_note_no" json:"creditNoteNo"`
	Date   time.Time `db:"credit_note_date" json:"creditNoteDate"`
	Unit   string    `db:"unit" json:"unit"`

	GrowerGroupID int64 `db:"grower_group_id" json:"growerGroupId"`
	FarmerID      int64 `db:"farmer_id" json:"farmerId"`

	CreditAccountKind accounts.Kind `db:"credit_account_type" json:"creditAccountType"`
	CreditAccountID   int64         `db:"credit_account_id" json:"creditAccountId"`
	DebitAccountKind  accounts.Kind `db:"debit_account_type" json:"debitAccountType"`
	DebitAccountID    int64         `db:"debit_account_id" json:"debitAccountId"`

	EntryProfileID *int64 `db:"entry_profile_id" json:"entryProfileId,omitempty"`

	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Narration string          `db:"narration" json:"narration,omitempty"`

	CreditAccountName string `db:"-" json:"creditAccountName,omitempty"`
	DebitAccountName  string `db:"-" json:"debitAccountName,omitempty"`
}

// CreditRef returns the credit leg as an account reference.
func (c *CreditNote) CreditRef() accounts.Reference {
	return accounts.Reference{Kind: c.CreditAccountKind, ID: c.CreditAccountID}
}

// DebitRef returns the debit leg as an account reference.
func (c *CreditNote) DebitRef() accounts.Reference {
	return accounts.Reference{Kind: c.DebitAccountKind, ID: c.DebitAccountID}
}

// AccountRefs implements accounts.NamePopulator.
func (c *CreditNote) AccountRefs() (accounts.Reference, accounts.Reference) {
	return c.CreditRef(), c.DebitRef()
}

// SetAccountNames implements accounts.NamePopulator.
func (c *CreditNote) SetAccountNames(creditName, debitName string) {
	c.CreditAccountName = creditName
	c.DebitAccountName = debitName
}

// Validate checks document invariants before save.
func (c *CreditNote) Validate(ctx context.Context) error {
	if c.Date.IsZero() {
		return apperror.NewValidation("credit note date is required").
			WithDetail("field", "creditNoteDate")
	}
	if c.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative").
			WithDetail("field", "amount")
	}
	if c.CreditAccountID != 0 && !c.CreditAccountKind.Valid() {
		return apperror.NewValidation("unknown credit account type").
			WithDetail("value", string(c.CreditAccountKind))
	}
	if c.DebitAccountID != 0 && !c.DebitAccountKind.Valid() {
		return apperror.NewValidation("unknown debit account type").
			WithDetail("value", string(c.DebitAccountKind))
	}
	return nil
}
