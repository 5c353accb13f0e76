package document_repo

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/domain/documents/receiptentry"
	"agriaccount/internal/infrastructure/storage/postgres"
)

const receiptTable = "receipt_entries"

var receiptCols = postgres.ExtractDBColumns[receiptentry.ReceiptEntry]()

// ReceiptEntryRepo implements receiptentry.Repository.
type ReceiptEntryRepo struct {
	docStore
}

var _ receiptentry.Repository = (*ReceiptEntryRepo)(nil)

func NewReceiptEntryRepo(txm *postgres.TxManager) *ReceiptEntryRepo {
	return &ReceiptEntryRepo{docStore: docStore{txm: txm, table: receiptTable, entity: "receipt entry"}}
}

func (r *ReceiptEntryRepo) CreateRows(ctx context.Context, rows []*receiptentry.ReceiptEntry) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			if err := insertReturningID(ctx, r.txm, receiptTable, postgres.StructToMap(row), &row.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ReceiptEntryRepo) GetByID(ctx context.Context, id int64) (*receiptentry.ReceiptEntry, error) {
	var row receiptentry.ReceiptEntry
	q := builder().Select(receiptCols...).From(receiptTable).
		Where(squirrel.Eq{"id": id, "is_active": true})
	if err := getOne(ctx, r.txm, q, &row, "receipt entry", id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ReceiptEntryRepo) GetByVoucher(ctx context.Context, voucherNo string) ([]*receiptentry.ReceiptEntry, error) {
	var rows []*receiptentry.ReceiptEntry
	q := builder().Select(receiptCols...).From(receiptTable).
		Where(squirrel.Eq{"voucher_no": voucherNo, "is_active": true}).
		OrderBy("id")
	if err := selectAll(ctx, r.txm, q, &rows, "receipt entries"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReceiptEntryRepo) ReplaceVoucherRows(ctx context.Context, voucherNo string, rows []*receiptentry.ReceiptEntry) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := r.txm.GetQuerier(ctx).Exec(ctx,
			"UPDATE receipt_entries SET is_active = false WHERE voucher_no = $1", voucherNo)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := insertReturningID(ctx, r.txm, receiptTable, postgres.StructToMap(row), &row.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ReceiptEntryRepo) List(ctx context.Context, filter receiptentry.ListFilter) ([]*receiptentry.ReceiptEntry, int64, error) {
	pred := squirrel.And{squirrel.Eq{"is_active": true}}
	if filter.Unit != "" {
		pred = append(pred, squirrel.Eq{"unit": filter.Unit})
	}
	if term := strings.TrimSpace(filter.VoucherNo); term != "" {
		pred = append(pred, squirrel.ILike{"voucher_no": "%" + term + "%"})
	}
	if filter.GrowerGroupID != 0 {
		pred = append(pred, squirrel.Eq{"grower_group_id": filter.GrowerGroupID})
	}
	if filter.FarmerID != 0 {
		pred = append(pred, squirrel.Eq{"farmer_id": filter.FarmerID})
	}
	if filter.Status != "" {
		pred = append(pred, squirrel.Eq{"status": filter.Status})
	}
	if !filter.DateFrom.IsZero() {
		pred = append(pred, squirrel.GtOrEq{"receipt_date": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		pred = append(pred, squirrel.LtOrEq{"receipt_date": filter.DateTo})
	}

	total, err := countRows(ctx, r.txm, builder().Select("COUNT(DISTINCT voucher_no)").From(receiptTable).Where(pred))
	if err != nil {
		return nil, 0, err
	}

	// Page over vouchers, then pull every row of the paged vouchers so
	// groups are never split across pages. The subquery keeps question
	// placeholders; the outer ToSql renumbers everything.
	offset := uint64((filter.Page - 1) * filter.PageSize)
	voucherQ := squirrel.Select("DISTINCT voucher_no").From(receiptTable).
		Where(pred).
		OrderBy("voucher_no DESC").
		Limit(uint64(filter.PageSize)).
		Offset(offset)
	voucherSQL, voucherArgs, err := voucherQ.ToSql()
	if err != nil {
		return nil, 0, err
	}

	q := builder().Select(receiptCols...).From(receiptTable).
		Where(pred).
		Where("voucher_no IN ("+voucherSQL+")", voucherArgs...).
		OrderBy("voucher_no DESC", "id")

	var rows []*receiptentry.ReceiptEntry
	if err := selectAll(ctx, r.txm, q, &rows, "receipt entries"); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
