package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/domain/agri"
	"agriaccount/internal/infrastructure/storage/postgres"
)

var farmerCols = postgres.ExtractDBColumns[agri.Farmer]()

// FarmerRepo implements agri.FarmerRepository.
type FarmerRepo struct {
	txm *postgres.TxManager
}

var _ agri.FarmerRepository = (*FarmerRepo)(nil)

func NewFarmerRepo(txm *postgres.TxManager) *FarmerRepo {
	return &FarmerRepo{txm: txm}
}

func (r *FarmerRepo) Create(ctx context.Context, farmer *agri.Farmer) error {
	return insertReturningID(ctx, r.txm, "farmers", postgres.StructToMap(farmer), &farmer.ID)
}

func (r *FarmerRepo) GetByID(ctx context.Context, id int64) (*agri.Farmer, error) {
	var farmer agri.Farmer
	q := builder().Select(farmerCols...).From("farmers").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &farmer, "farmer", id); err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepo) Update(ctx context.Context, farmer *agri.Farmer) error {
	return updateByID(ctx, r.txm, "farmers", farmer.ID, postgres.StructToMap(farmer))
}

func (r *FarmerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return setActive(ctx, r.txm, "farmers", id, active)
}

func (r *FarmerRepo) ListActive(ctx context.Context) ([]*agri.Farmer, error) {
	var farmers []*agri.Farmer
	q := builder().Select(farmerCols...).From("farmers").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("farmer_name")
	if err := selectAll(ctx, r.txm, q, &farmers, "farmers"); err != nil {
		return nil, err
	}
	return farmers, nil
}

func (r *FarmerRepo) ListByGroup(ctx context.Context, groupID int64) ([]*agri.Farmer, error) {
	var farmers []*agri.Farmer
	q := builder().Select(farmerCols...).From("farmers").
		Where(squirrel.Eq{"group_id": groupID, "is_active": true}).
		OrderBy("farmer_name")
	if err := selectAll(ctx, r.txm, q, &farmers, "farmers"); err != nil {
		return nil, err
	}
	return farmers, nil
}

func (r *FarmerRepo) LastCode(ctx context.Context, groupID int64) (string, error) {
	return lastCode(ctx, r.txm, "farmers", "farmer_code", squirrel.Eq{"group_id": groupID})
}
