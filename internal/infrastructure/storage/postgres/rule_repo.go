package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/rules"
)

var ruleCols = ExtractDBColumns[rules.Rule]()

// RuleRepo implements rules.Store over the account_rules and
// entry_profiles tables.
type RuleRepo struct {
	txm *TxManager
}

var _ rules.Store = (*RuleRepo)(nil)

func NewRuleRepo(txm *TxManager) *RuleRepo {
	return &RuleRepo{txm: txm}
}

func (r *RuleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// FindRule returns the lowest-id rule for the key, or nil. Duplicate
// rows can exist; only the first is honored.
func (r *RuleRepo) FindRule(ctx context.Context, kind accounts.Kind, accountID int64, entryProfileID *int64) (*rules.Rule, error) {
	q := r.builder().Select(ruleCols...).From("account_rules").
		Where(squirrel.Eq{"account_type": kind, "account_id": accountID}).
		OrderBy("id").
		Limit(1)
	if entryProfileID == nil {
		q = q.Where("entry_profile_id IS NULL")
	} else {
		q = q.Where(squirrel.Eq{"entry_profile_id": *entryProfileID})
	}
	return r.findOne(ctx, q)
}

// FirstProfileRule returns the first profile-scoped rule for the
// account, or nil when it has none.
func (r *RuleRepo) FirstProfileRule(ctx context.Context, kind accounts.Kind, accountID int64) (*rules.Rule, error) {
	q := r.builder().Select(ruleCols...).From("account_rules").
		Where(squirrel.Eq{"account_type": kind, "account_id": accountID}).
		Where("entry_profile_id IS NOT NULL").
		OrderBy("id").
		Limit(1)
	return r.findOne(ctx, q)
}

func (r *RuleRepo) findOne(ctx context.Context, q squirrel.SelectBuilder) (*rules.Rule, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var rule rules.Rule
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rule, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select rule: %w", err)
	}
	return &rule, nil
}

func (r *RuleRepo) ListEntryProfiles(ctx context.Context, docType string) ([]rules.EntryProfile, error) {
	q := r.builder().Select("id", "name", "transaction_type").From("entry_profiles").
		Where(squirrel.Or{
			squirrel.Eq{"transaction_type": "Global"},
			squirrel.Eq{"transaction_type": docType},
		}).
		OrderBy("name")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var profiles []rules.EntryProfile
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &profiles, sql, args...); err != nil {
		return nil, fmt.Errorf("select entry profiles: %w", err)
	}
	return profiles, nil
}
