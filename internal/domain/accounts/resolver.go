package accounts

import (
	"context"
)

// Resolver resolves account references into display names and parent links.
//
// Resolution is total over its domain: every input yields a non-empty
// display name and no input raises. Missing rows and unrecognized kinds
// degrade to placeholder text instead.
type Resolver struct {
	dir *Directory
}

// NewResolver creates a resolver over the given directory.
func NewResolver(dir *Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve returns the current display name for ref, plus the parent
// reference for kinds that have one (used by the rule engine's fallback).
//
// A zero id short-circuits to the "N/A" sentinel without touching storage.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) Resolved {
	if ref.IsZero() {
		return Resolved{Reference: ref, DisplayName: NoAccountName}
	}

	if !ref.Kind.Valid() {
		// Unrecognized tag: observable literal, signals bad data to callers.
		return Resolved{Reference: ref, DisplayName: ref.String()}
	}

	reader, ok := r.dir.Reader(ref.Kind)
	if !ok {
		return Resolved{Reference: ref, DisplayName: ref.Kind.unknownPlaceholder()}
	}

	entry, err := reader.FindByID(ctx, ref.ID)
	if err != nil || entry == nil {
		return Resolved{Reference: ref, DisplayName: ref.Kind.unknownPlaceholder()}
	}

	resolved := Resolved{Reference: ref, DisplayName: entry.Name}
	if pk, ok := ParentKind(ref.Kind); ok && entry.GroupID > 0 {
		resolved.Parent = &Reference{Kind: pk, ID: entry.GroupID}
	}
	return resolved
}

// DisplayName is a convenience wrapper for callers that only render names.
func (r *Resolver) DisplayName(ctx context.Context, ref Reference) string {
	return r.Resolve(ctx, ref).DisplayName
}

// NamePopulator is implemented by list rows that cache resolved names for
// one read batch (credit note lists, voucher details).
type NamePopulator interface {
	AccountRefs() (credit Reference, debit Reference)
	SetAccountNames(creditName, debitName string)
}

// PopulateNames fills the cached display-name fields of a read batch.
// Names are recomputed per batch; the cache must not outlive it.
func (r *Resolver) PopulateNames(ctx context.Context, rows []NamePopulator) {
	for _, row := range rows {
		credit, debit := row.AccountRefs()
		row.SetAccountNames(r.DisplayName(ctx, credit), r.DisplayName(ctx, debit))
	}
}
