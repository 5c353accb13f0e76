package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/domain/agri"
	"agriaccount/internal/infrastructure/storage/postgres"
)

var growerGroupCols = postgres.ExtractDBColumns[agri.GrowerGroup]()

// GrowerGroupRepo implements agri.GroupRepository.
type GrowerGroupRepo struct {
	txm *postgres.TxManager
}

var _ agri.GroupRepository = (*GrowerGroupRepo)(nil)

func NewGrowerGroupRepo(txm *postgres.TxManager) *GrowerGroupRepo {
	return &GrowerGroupRepo{txm: txm}
}

func (r *GrowerGroupRepo) Create(ctx context.Context, group *agri.GrowerGroup) error {
	return insertReturningID(ctx, r.txm, "grower_groups", postgres.StructToMap(group), &group.ID)
}

func (r *GrowerGroupRepo) GetByID(ctx context.Context, id int64) (*agri.GrowerGroup, error) {
	var group agri.GrowerGroup
	q := builder().Select(growerGroupCols...).From("grower_groups").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &group, "grower group", id); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GrowerGroupRepo) Update(ctx context.Context, group *agri.GrowerGroup) error {
	return updateByID(ctx, r.txm, "grower_groups", group.ID, postgres.StructToMap(group))
}

func (r *GrowerGroupRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return setActive(ctx, r.txm, "grower_groups", id, active)
}

func (r *GrowerGroupRepo) ListActive(ctx context.Context) ([]*agri.GrowerGroup, error) {
	var groups []*agri.GrowerGroup
	q := builder().Select(growerGroupCols...).From("grower_groups").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("group_name")
	if err := selectAll(ctx, r.txm, q, &groups, "grower groups"); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *GrowerGroupRepo) LastCode(ctx context.Context) (string, error) {
	return lastCode(ctx, r.txm, "grower_groups", "group_code", nil)
}
