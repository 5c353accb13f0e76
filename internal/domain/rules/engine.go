package rules

import (
	"context"
	"sort"

	"agriaccount/internal/domain/accounts"
	"agriaccount/pkg/logger"
)

const (
	// perKindSearchLimit bounds the candidate scan per account kind.
	perKindSearchLimit = 50

	// searchResultCap bounds the merged picker result. Performance bound,
	// not a business rule.
	searchResultCap = 100
)

// LookupItem is one counterparty candidate offered by the pickers.
type LookupItem struct {
	ID   int64         `json:"id"`
	Name string        `json:"name"`
	Kind accounts.Kind `json:"type"`
}

// Engine evaluates counterparty rules with specific/default/parent
// precedence. Evaluation is total: storage failures degrade to "no rule
// found" rather than surfacing an error to entry screens.
type Engine struct {
	store    Store
	resolver *accounts.Resolver
	dir      *accounts.Directory
}

// NewEngine creates a rule engine over the given store and directory.
func NewEngine(store Store, resolver *accounts.Resolver, dir *accounts.Directory) *Engine {
	return &Engine{store: store, resolver: resolver, dir: dir}
}

// IsAllowed reports whether the account may take the requested role.
//
// Precedence, first hit wins:
//  1. profile-scoped rule on the account itself (when a profile is given)
//  2. the account's default rule
//  3. steps 1-2 on the account's structural parent
//  4. no rule anywhere: allow
func (e *Engine) IsAllowed(ctx context.Context, ref accounts.Reference, role Role, entryProfileID *int64) bool {
	if d, found := e.lookup(ctx, ref.Kind, ref.ID, entryProfileID); found {
		return d.Allows(role)
	}

	resolved := e.resolver.Resolve(ctx, ref)
	if resolved.Parent != nil {
		if d, found := e.lookup(ctx, resolved.Parent.Kind, resolved.Parent.ID, entryProfileID); found {
			return d.Allows(role)
		}
	}

	// Absence of a rule is not a denial.
	return true
}

// lookup applies steps 1-2 of the precedence chain for one account.
func (e *Engine) lookup(ctx context.Context, kind accounts.Kind, accountID int64, entryProfileID *int64) (Disposition, bool) {
	if entryProfileID != nil {
		rule, err := e.store.FindRule(ctx, kind, accountID, entryProfileID)
		if err != nil {
			logger.Warn(ctx, "rule lookup failed, treating as no rule",
				"kind", kind, "account_id", accountID, "error", err)
		} else if rule != nil {
			return rule.Disposition, true
		}
	}

	rule, err := e.store.FindRule(ctx, kind, accountID, nil)
	if err != nil {
		logger.Warn(ctx, "default rule lookup failed, treating as no rule",
			"kind", kind, "account_id", accountID, "error", err)
		return "", false
	}
	if rule != nil {
		return rule.Disposition, true
	}
	return "", false
}

// InferEntryProfile returns the entry profile forced by either leg's
// profile-scoped rules, credit leg first. Nil means no forced profile;
// callers must not treat that as an error.
func (e *Engine) InferEntryProfile(ctx context.Context, creditRef, debitRef accounts.Reference) *int64 {
	for _, ref := range []accounts.Reference{creditRef, debitRef} {
		rule, err := e.store.FirstProfileRule(ctx, ref.Kind, ref.ID)
		if err != nil {
			logger.Warn(ctx, "profile rule scan failed",
				"kind", ref.Kind, "account_id", ref.ID, "error", err)
			continue
		}
		if rule != nil && rule.EntryProfileID != nil {
			id := *rule.EntryProfileID
			return &id
		}
	}
	return nil
}

// ListAllowedAccounts scans the searchable account kinds for candidates
// matching searchTerm, drops everything the rules deny for the role, and
// returns the survivors merged across kinds, sorted by display name.
//
// At most perKindSearchLimit candidates are considered per kind and at most
// searchResultCap entries are returned.
func (e *Engine) ListAllowedAccounts(ctx context.Context, searchTerm string, entryProfileID *int64, role Role) []LookupItem {
	if role == "" {
		role = RoleCredit
	}

	var results []LookupItem
	for _, kind := range accounts.SearchableKinds {
		reader, ok := e.dir.Reader(kind)
		if !ok {
			continue
		}
		entries, err := reader.SearchByName(ctx, searchTerm, perKindSearchLimit)
		if err != nil {
			logger.Warn(ctx, "directory search failed", "kind", kind, "error", err)
			continue
		}
		for _, entry := range entries {
			ref := accounts.Reference{Kind: kind, ID: entry.ID}
			if !e.IsAllowed(ctx, ref, role, entryProfileID) {
				continue
			}
			results = append(results, LookupItem{ID: entry.ID, Name: entry.Name, Kind: kind})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	if len(results) > searchResultCap {
		results = results[:searchResultCap]
	}
	return results
}

// ListEntryProfiles returns the profiles selectable for a document type.
func (e *Engine) ListEntryProfiles(ctx context.Context, docType string) ([]EntryProfile, error) {
	return e.store.ListEntryProfiles(ctx, docType)
}
