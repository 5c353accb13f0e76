package document_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/documents/settlement"
	"agriaccount/internal/infrastructure/storage/postgres"
)

const settlementTable = "payment_settlements"

var settlementCols = postgres.ExtractDBColumns[settlement.Settlement]()

// SettlementRepo implements settlement.Repository. The vendor group is
// denormalized onto the settlement row at creation time.
type SettlementRepo struct {
	docStore
}

var _ settlement.Repository = (*SettlementRepo)(nil)

func NewSettlementRepo(txm *postgres.TxManager) *SettlementRepo {
	return &SettlementRepo{docStore: docStore{txm: txm, table: settlementTable, entity: "settlement"}}
}

func (r *SettlementRepo) CreateRows(ctx context.Context, rows []*settlement.Settlement) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			if err := insertReturningID(ctx, r.txm, settlementTable, postgres.StructToMap(row), &row.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SettlementRepo) GetByID(ctx context.Context, id int64) (*settlement.Settlement, error) {
	var row settlement.Settlement
	q := builder().Select(settlementCols...).From(settlementTable).
		Where(squirrel.Eq{"id": id, "is_active": true})
	if err := getOne(ctx, r.txm, q, &row, "settlement", id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *SettlementRepo) GetByPANumber(ctx context.Context, paNumber string) ([]*settlement.Settlement, error) {
	var rows []*settlement.Settlement
	q := builder().Select(settlementCols...).From(settlementTable).
		Where(squirrel.Eq{"pa_number": paNumber, "is_active": true}).
		OrderBy("id")
	if err := selectAll(ctx, r.txm, q, &rows, "settlements"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SettlementRepo) ReplaceBatchRows(ctx context.Context, paNumber string, rows []*settlement.Settlement) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := r.txm.GetQuerier(ctx).Exec(ctx,
			"UPDATE payment_settlements SET is_active = false WHERE pa_number = $1", paNumber)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := insertReturningID(ctx, r.txm, settlementTable, postgres.StructToMap(row), &row.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SettlementRepo) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx,
		"UPDATE payment_settlements SET payment_status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("settlement", id)
	}
	return nil
}

func (r *SettlementRepo) List(ctx context.Context, filter settlement.ListFilter) ([]*settlement.Settlement, int64, error) {
	scols := make([]string, 0, len(settlementCols))
	for _, c := range settlementCols {
		scols = append(scols, "s."+c)
	}

	pred := squirrel.And{squirrel.Eq{"s.is_active": true}}
	if term := strings.TrimSpace(filter.PANumber); term != "" {
		pred = append(pred, squirrel.ILike{"s.pa_number": "%" + term + "%"})
	}
	if filter.Unit != "" {
		pred = append(pred, squirrel.Eq{"s.unit": filter.Unit})
	}
	if term := strings.TrimSpace(filter.VendorGroup); term != "" {
		pred = append(pred, squirrel.ILike{"s.vendor_group": "%" + term + "%"})
	}
	if term := strings.TrimSpace(filter.VendorName); term != "" {
		pred = append(pred, squirrel.ILike{"v.vendor_name": "%" + term + "%"})
	}
	if filter.Status != "" {
		pred = append(pred, squirrel.Eq{"s.status": filter.Status})
	}
	if filter.PaymentStatus != "" {
		pred = append(pred, squirrel.Eq{"s.payment_status": filter.PaymentStatus})
	}
	if !filter.DateFrom.IsZero() {
		pred = append(pred, squirrel.GtOrEq{"s.settlement_date": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		pred = append(pred, squirrel.LtOrEq{"s.settlement_date": filter.DateTo})
	}

	countQ := builder().Select("COUNT(DISTINCT s.pa_number)").
		From(settlementTable + " s").
		LeftJoin("vendors v ON v.id = s.vendor_id").
		Where(pred)
	total, err := countRows(ctx, r.txm, countQ)
	if err != nil {
		return nil, 0, err
	}

	// Page over PA numbers, then pull every row of the paged batches so
	// groups are never split across pages. The subquery keeps question
	// placeholders; the outer ToSql renumbers everything.
	offset := uint64((filter.Page - 1) * filter.PageSize)
	paQ := squirrel.Select("DISTINCT s.pa_number").
		From(settlementTable + " s").
		LeftJoin("vendors v ON v.id = s.vendor_id").
		Where(pred).
		OrderBy("s.pa_number DESC").
		Limit(uint64(filter.PageSize)).
		Offset(offset)
	paSQL, paArgs, err := paQ.ToSql()
	if err != nil {
		return nil, 0, err
	}

	q := builder().Select(scols...).
		From(settlementTable + " s").
		LeftJoin("vendors v ON v.id = s.vendor_id").
		Where(pred).
		Where("s.pa_number IN ("+paSQL+")", paArgs...).
		OrderBy("s.pa_number DESC", "s.id")

	var rows []*settlement.Settlement
	if err := selectAll(ctx, r.txm, q, &rows, "settlements"); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
