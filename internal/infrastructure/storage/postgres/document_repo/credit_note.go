package document_repo

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/domain/documents/creditnote"
	"agriaccount/internal/infrastructure/storage/postgres"
)

const creditNoteTable = "credit_notes"

var creditNoteCols = postgres.ExtractDBColumns[creditnote.CreditNote]()

// CreditNoteRepo implements creditnote.Repository.
type CreditNoteRepo struct {
	docStore
}

var _ creditnote.Repository = (*CreditNoteRepo)(nil)

func NewCreditNoteRepo(txm *postgres.TxManager) *CreditNoteRepo {
	return &CreditNoteRepo{docStore: docStore{txm: txm, table: creditNoteTable, entity: "credit note"}}
}

func (r *CreditNoteRepo) Create(ctx context.Context, note *creditnote.CreditNote) error {
	return insertReturningID(ctx, r.txm, creditNoteTable, postgres.StructToMap(note), &note.ID)
}

func (r *CreditNoteRepo) GetByID(ctx context.Context, id int64) (*creditnote.CreditNote, error) {
	var note creditnote.CreditNote
	q := builder().Select(creditNoteCols...).From(creditNoteTable).
		Where(squirrel.Eq{"id": id, "is_active": true})
	if err := getOne(ctx, r.txm, q, &note, "credit note", id); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *CreditNoteRepo) Update(ctx context.Context, note *creditnote.CreditNote) error {
	data := postgres.StructToMap(note)
	// Identity, audit stamps and workflow columns stay as they are.
	delete(data, "id")
	delete(data, "credit_note_no")
	delete(data, "status")
	delete(data, "is_active")
	delete(data, "created_at")
	delete(data, "created_by")

	q := builder().Update(creditNoteTable).SetMap(data).
		Where(squirrel.Eq{"id": note.ID, "is_active": true})
	sql, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return err
}

func (r *CreditNoteRepo) List(ctx context.Context, filter creditnote.ListFilter) ([]*creditnote.CreditNote, int64, error) {
	pred := r.listPredicate(filter)

	total, err := countRows(ctx, r.txm, builder().Select("COUNT(*)").From(creditNoteTable).Where(pred))
	if err != nil {
		return nil, 0, err
	}

	offset := uint64((filter.Page - 1) * filter.PageSize)
	q := builder().Select(creditNoteCols...).From(creditNoteTable).
		Where(pred).
		OrderBy("credit_note_date DESC", "id DESC").
		Limit(uint64(filter.PageSize)).
		Offset(offset)

	var notes []*creditnote.CreditNote
	if err := selectAll(ctx, r.txm, q, &notes, "credit notes"); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *CreditNoteRepo) listPredicate(filter creditnote.ListFilter) squirrel.And {
	pred := squirrel.And{squirrel.Eq{"is_active": true}}
	if filter.Unit != "" {
		pred = append(pred, squirrel.Eq{"unit": filter.Unit})
	}
	if term := strings.TrimSpace(filter.Number); term != "" {
		pred = append(pred, squirrel.ILike{"credit_note_no": "%" + term + "%"})
	}
	if filter.GrowerGroupID != nil {
		pred = append(pred, squirrel.Eq{"grower_group_id": *filter.GrowerGroupID})
	}
	if filter.FarmerID != nil {
		pred = append(pred, squirrel.Eq{"farmer_id": *filter.FarmerID})
	}
	if filter.Status != "" && !strings.EqualFold(filter.Status, "ALL") {
		pred = append(pred, squirrel.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		pred = append(pred, squirrel.GtOrEq{"credit_note_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		pred = append(pred, squirrel.LtOrEq{"credit_note_date": *filter.DateTo})
	}
	return pred
}
