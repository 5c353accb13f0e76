package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/domain/agri"
	"agriaccount/internal/infrastructure/storage/postgres"
)

var lotCols = postgres.ExtractDBColumns[agri.Lot]()

// LotRepo implements agri.LotRepository.
type LotRepo struct {
	txm *postgres.TxManager
}

var _ agri.LotRepository = (*LotRepo)(nil)

func NewLotRepo(txm *postgres.TxManager) *LotRepo {
	return &LotRepo{txm: txm}
}

func (r *LotRepo) Create(ctx context.Context, lot *agri.Lot) error {
	return insertReturningID(ctx, r.txm, "lots", postgres.StructToMap(lot), &lot.ID)
}

func (r *LotRepo) GetByID(ctx context.Context, id int64) (*agri.Lot, error) {
	var lot agri.Lot
	q := builder().Select(lotCols...).From("lots").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &lot, "lot", id); err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *LotRepo) Update(ctx context.Context, lot *agri.Lot) error {
	return updateByID(ctx, r.txm, "lots", lot.ID, postgres.StructToMap(lot))
}

func (r *LotRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return setActive(ctx, r.txm, "lots", id, active)
}

func (r *LotRepo) ListByGroup(ctx context.Context, groupID int64) ([]*agri.Lot, error) {
	var lots []*agri.Lot
	q := builder().Select(lotCols...).From("lots").
		Where(squirrel.Eq{"group_id": groupID, "is_active": true}).
		OrderBy("arrival_date DESC")
	if err := selectAll(ctx, r.txm, q, &lots, "lots"); err != nil {
		return nil, err
	}
	return lots, nil
}
