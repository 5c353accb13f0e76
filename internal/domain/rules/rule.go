// Package rules decides whether a ledger account may act as a debit or
// credit counterparty in a given transaction context.
package rules

import (
	"context"

	"agriaccount/internal/domain/accounts"
)

// Role is the side of the transaction an account is asked to take.
type Role string

const (
	RoleDebit  Role = "Debit"
	RoleCredit Role = "Credit"
)

// Disposition is the outcome value a rule row carries.
type Disposition string

const (
	DispositionBoth   Disposition = "Both"
	DispositionCancel Disposition = "Cancel"
	DispositionDebit  Disposition = "Debit"
	DispositionCredit Disposition = "Credit"
)

// Allows maps a disposition to an allow/deny decision for a role.
// Unknown disposition values deny: a malformed rule row must not widen
// what an account can do.
func (d Disposition) Allows(role Role) bool {
	switch d {
	case DispositionBoth:
		return true
	case DispositionCancel:
		return false
	case DispositionDebit:
		return role == RoleDebit
	case DispositionCredit:
		return role == RoleCredit
	}
	return false
}

// Rule restricts one account's participation, either across all entry
// profiles (EntryProfileID nil, the account's default rule) or within a
// single named profile.
type Rule struct {
	ID             int64         `db:"id"`
	Kind           accounts.Kind `db:"account_type"`
	AccountID      int64         `db:"account_id"`
	EntryProfileID *int64        `db:"entry_profile_id"`
	Disposition    Disposition   `db:"disposition"`
}

// EntryProfile is a named transaction context ("Global", "CreditNote", ...)
// used to scope rule lookups.
type EntryProfile struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	TransactionType string `db:"transaction_type" json:"transactionType"`
}

// Store reads rule rows. Duplicate rows for the same key may exist in
// storage; FindRule returns the first one deterministically (lowest id)
// and the engine honors only that row.
type Store interface {
	// FindRule returns the rule for (kind, accountID, entryProfileID),
	// or nil when no row matches. A nil entryProfileID matches only the
	// account's default rule rows.
	FindRule(ctx context.Context, kind accounts.Kind, accountID int64, entryProfileID *int64) (*Rule, error)

	// FirstProfileRule returns the first rule for the account carrying a
	// non-nil EntryProfileID, or nil when the account has none.
	FirstProfileRule(ctx context.Context, kind accounts.Kind, accountID int64) (*Rule, error)

	// ListEntryProfiles returns profiles whose transaction type is
	// "Global" or matches docType, ordered by name.
	ListEntryProfiles(ctx context.Context, docType string) ([]EntryProfile, error)
}
