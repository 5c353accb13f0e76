package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/accounts"
)

// tableReader implements accounts.Reader over one entity table, mapping
// its id/name/parent columns onto the directory's flat Entry view.
type tableReader struct {
	txm      *TxManager
	table    string
	nameCol  string
	groupCol string // "" when the kind has no structural parent
	entity   string
}

var _ accounts.Reader = (*tableReader)(nil)

func (r *tableReader) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *tableReader) columns() []string {
	cols := []string{"id", r.nameCol + " AS name"}
	if r.groupCol != "" {
		cols = append(cols, r.groupCol+" AS group_id")
	} else {
		cols = append(cols, "0 AS group_id")
	}
	return cols
}

func (r *tableReader) FindByID(ctx context.Context, id int64) (*accounts.Entry, error) {
	q := r.builder().Select(r.columns()...).From(r.table).Where(squirrel.Eq{"id": id})
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var entry accounts.Entry
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &entry, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound(r.entity, id)
		}
		return nil, fmt.Errorf("select %s: %w", r.entity, err)
	}
	return &entry, nil
}

func (r *tableReader) SearchByName(ctx context.Context, term string, limit int) ([]accounts.Entry, error) {
	q := r.builder().Select(r.columns()...).From(r.table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy(r.nameCol).
		Limit(uint64(limit))
	if term = strings.TrimSpace(term); term != "" {
		q = q.Where(squirrel.ILike{r.nameCol: "%" + term + "%"})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var entries []accounts.Entry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("search %s: %w", r.entity, err)
	}
	return entries, nil
}

// NewDirectory builds the account directory with a reader per kind.
func NewDirectory(txm *TxManager) *accounts.Directory {
	dir := accounts.NewDirectory()
	dir.Register(accounts.KindFarmer, &tableReader{
		txm: txm, table: "farmers", nameCol: "farmer_name", groupCol: "group_id", entity: "farmer",
	})
	dir.Register(accounts.KindGrowerGroup, &tableReader{
		txm: txm, table: "grower_groups", nameCol: "group_name", entity: "grower group",
	})
	dir.Register(accounts.KindBankMaster, &tableReader{
		txm: txm, table: "bank_masters", nameCol: "account_name", groupCol: "group_id", entity: "bank account",
	})
	dir.Register(accounts.KindSubGroupLedger, &tableReader{
		txm: txm, table: "sub_group_ledgers", nameCol: "ledger_name", entity: "sub-group ledger",
	})
	dir.Register(accounts.KindMasterGroup, &tableReader{
		txm: txm, table: "master_groups", nameCol: "group_name", entity: "master group",
	})
	dir.Register(accounts.KindVendor, &tableReader{
		txm: txm, table: "vendors", nameCol: "vendor_name", entity: "vendor",
	})
	return dir
}
