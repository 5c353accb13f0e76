package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"agriaccount/internal/domain/vendor"
	"agriaccount/internal/infrastructure/storage/postgres"
)

var vendorCols = postgres.ExtractDBColumns[vendor.Vendor]()

// VendorRepo implements vendor.Repository.
type VendorRepo struct {
	txm *postgres.TxManager
}

var _ vendor.Repository = (*VendorRepo)(nil)

func NewVendorRepo(txm *postgres.TxManager) *VendorRepo {
	return &VendorRepo{txm: txm}
}

func (r *VendorRepo) Create(ctx context.Context, v *vendor.Vendor) error {
	return insertReturningID(ctx, r.txm, "vendors", postgres.StructToMap(v), &v.ID)
}

func (r *VendorRepo) GetByID(ctx context.Context, id int64) (*vendor.Vendor, error) {
	var v vendor.Vendor
	q := builder().Select(vendorCols...).From("vendors").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &v, "vendor", id); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepo) Update(ctx context.Context, v *vendor.Vendor) error {
	return updateByID(ctx, r.txm, "vendors", v.ID, postgres.StructToMap(v))
}

func (r *VendorRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return setActive(ctx, r.txm, "vendors", id, active)
}

func (r *VendorRepo) ListActive(ctx context.Context) ([]*vendor.Vendor, error) {
	var vendors []*vendor.Vendor
	q := builder().Select(vendorCols...).From("vendors").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("vendor_name")
	if err := selectAll(ctx, r.txm, q, &vendors, "vendors"); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *VendorRepo) Search(ctx context.Context, term string, limit int) ([]*vendor.Vendor, error) {
	q := builder().Select(vendorCols...).From("vendors").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("vendor_name").
		Limit(uint64(limit))
	if term = strings.TrimSpace(term); term != "" {
		pattern := "%" + term + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"vendor_name": pattern},
			squirrel.ILike{"vendor_code": pattern},
		})
	}
	var vendors []*vendor.Vendor
	if err := selectAll(ctx, r.txm, q, &vendors, "vendors"); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *VendorRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT 1 FROM vendors WHERE id = $1", id).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("vendor exists: %w", err)
	}
	return true, nil
}

func (r *VendorRepo) LastCode(ctx context.Context) (string, error) {
	return lastCode(ctx, r.txm, "vendors", "vendor_code", nil)
}
