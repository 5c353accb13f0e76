package catalog_repo

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/domain/packing"
	"agriaccount/internal/infrastructure/storage/postgres"
)

var (
	recipeCols       = postgres.ExtractDBColumns[packing.Recipe]()
	materialCols     = postgres.ExtractDBColumns[packing.Material]()
	purchaseItemCols = postgres.ExtractDBColumns[packing.PurchaseItem]()
	specialRateCols  = postgres.ExtractDBColumns[packing.SpecialRate]()
	rateDetailCols   = postgres.ExtractDBColumns[packing.SpecialRateDetail]()
)

// PackingRepo implements packing.Repository.
type PackingRepo struct {
	txm *postgres.TxManager
}

var _ packing.Repository = (*PackingRepo)(nil)

func NewPackingRepo(txm *postgres.TxManager) *PackingRepo {
	return &PackingRepo{txm: txm}
}

func (r *PackingRepo) CreateRecipe(ctx context.Context, recipe *packing.Recipe, materials []*packing.Material) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := insertReturningID(ctx, r.txm, "packing_recipes", postgres.StructToMap(recipe), &recipe.ID); err != nil {
			return err
		}
		return r.insertMaterials(ctx, recipe.ID, materials)
	})
}

func (r *PackingRepo) GetRecipe(ctx context.Context, id int64) (*packing.Recipe, error) {
	var recipe packing.Recipe
	q := builder().Select(recipeCols...).From("packing_recipes").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &recipe, "packing recipe", id); err != nil {
		return nil, err
	}
	mq := builder().Select(materialCols...).From("packing_recipe_materials").
		Where(squirrel.Eq{"recipe_id": id}).
		OrderBy("id")
	if err := selectAll(ctx, r.txm, mq, &recipe.Materials, "recipe materials"); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *PackingRepo) UpdateRecipe(ctx context.Context, recipe *packing.Recipe, materials []*packing.Material) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := updateByID(ctx, r.txm, "packing_recipes", recipe.ID, postgres.StructToMap(recipe)); err != nil {
			return err
		}
		if _, err := r.txm.GetQuerier(ctx).Exec(ctx,
			"DELETE FROM packing_recipe_materials WHERE recipe_id = $1", recipe.ID); err != nil {
			return err
		}
		return r.insertMaterials(ctx, recipe.ID, materials)
	})
}

func (r *PackingRepo) insertMaterials(ctx context.Context, recipeID int64, materials []*packing.Material) error {
	for _, m := range materials {
		m.RecipeID = recipeID
		if err := insertReturningID(ctx, r.txm, "packing_recipe_materials", postgres.StructToMap(m), &m.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PackingRepo) ListRecipes(ctx context.Context, searchTerm string) ([]*packing.Recipe, error) {
	q := builder().Select(recipeCols...).From("packing_recipes").OrderBy("created_at DESC")
	if searchTerm = strings.TrimSpace(searchTerm); searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"recipe_code": pattern},
			squirrel.ILike{"recipe_name": pattern},
		})
	}
	var recipes []*packing.Recipe
	if err := selectAll(ctx, r.txm, q, &recipes, "packing recipes"); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *PackingRepo) LastRecipeCode(ctx context.Context) (string, error) {
	return lastCode(ctx, r.txm, "packing_recipes", "recipe_code", nil)
}

func (r *PackingRepo) SearchMaterials(ctx context.Context, term string) ([]*packing.PurchaseItem, error) {
	q := builder().Select(purchaseItemCols...).From("purchase_items").
		Where(squirrel.Eq{"inventory_type": packing.InventoryTypePacking, "is_active": true}).
		OrderBy("item_name")
	if term = strings.TrimSpace(term); term != "" {
		pattern := "%" + term + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"item_name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	var items []*packing.PurchaseItem
	if err := selectAll(ctx, r.txm, q, &items, "purchase items"); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PackingRepo) GetMaterialItem(ctx context.Context, id int64) (*packing.PurchaseItem, error) {
	var item packing.PurchaseItem
	q := builder().Select(purchaseItemCols...).From("purchase_items").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &item, "purchase item", id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PackingRepo) ListUOMs(ctx context.Context) ([]string, error) {
	q := builder().Select("DISTINCT uom").From("purchase_items").
		Where(squirrel.NotEq{"uom": ""}).
		OrderBy("uom")
	var uoms []string
	if err := selectAll(ctx, r.txm, q, &uoms, "uoms"); err != nil {
		return nil, err
	}
	return uoms, nil
}

func (r *PackingRepo) CreateRecipeSpecialRate(ctx context.Context, rate *packing.RecipeSpecialRate, details []*packing.RecipeRateDetail) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := insertReturningID(ctx, r.txm, "packing_recipe_special_rates", postgres.StructToMap(rate), &rate.ID); err != nil {
			return err
		}
		for _, d := range details {
			d.SpecialRateID = rate.ID
			if err := insertReturningID(ctx, r.txm, "packing_recipe_special_rate_details", postgres.StructToMap(d), &d.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PackingRepo) CreateSpecialRate(ctx context.Context, rate *packing.SpecialRate, details []*packing.SpecialRateDetail) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := insertReturningID(ctx, r.txm, "packing_special_rates", postgres.StructToMap(rate), &rate.ID); err != nil {
			return err
		}
		return r.insertRateDetails(ctx, rate.ID, details)
	})
}

func (r *PackingRepo) GetSpecialRate(ctx context.Context, id int64) (*packing.SpecialRate, error) {
	var rate packing.SpecialRate
	q := builder().Select(specialRateCols...).From("packing_special_rates").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &rate, "packing special rate", id); err != nil {
		return nil, err
	}
	dq := builder().Select(rateDetailCols...).From("packing_special_rate_details").
		Where(squirrel.Eq{"special_rate_id": id}).
		OrderBy("id")
	if err := selectAll(ctx, r.txm, dq, &rate.Details, "special rate details"); err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *PackingRepo) UpdateSpecialRate(ctx context.Context, rate *packing.SpecialRate, details []*packing.SpecialRateDetail) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := updateByID(ctx, r.txm, "packing_special_rates", rate.ID, postgres.StructToMap(rate)); err != nil {
			return err
		}
		if _, err := r.txm.GetQuerier(ctx).Exec(ctx,
			"DELETE FROM packing_special_rate_details WHERE special_rate_id = $1", rate.ID); err != nil {
			return err
		}
		return r.insertRateDetails(ctx, rate.ID, details)
	})
}

func (r *PackingRepo) insertRateDetails(ctx context.Context, rateID int64, details []*packing.SpecialRateDetail) error {
	for _, d := range details {
		d.SpecialRateID = rateID
		if err := insertReturningID(ctx, r.txm, "packing_special_rate_details", postgres.StructToMap(d), &d.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PackingRepo) ListSpecialRates(ctx context.Context, filter packing.SpecialRateFilter) ([]*packing.SpecialRate, error) {
	cols := make([]string, 0, len(specialRateCols))
	for _, c := range specialRateCols {
		cols = append(cols, "r."+c)
	}
	q := builder().Select(cols...).From("packing_special_rates r").
		LeftJoin("grower_groups g ON g.id = r.grower_group_id").
		LeftJoin("farmers f ON f.id = r.farmer_id").
		OrderBy("r.effective_date DESC")

	if term := strings.TrimSpace(filter.GroupSearch); term != "" {
		pattern := "%" + term + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"g.group_name": pattern},
			squirrel.ILike{"g.group_code": pattern},
		})
	}
	if term := strings.TrimSpace(filter.FarmerSearch); term != "" {
		pattern := "%" + term + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"f.farmer_name": pattern},
			squirrel.ILike{"f.farmer_code": pattern},
		})
	}
	switch strings.ToLower(filter.Status) {
	case "active":
		q = q.Where(squirrel.Eq{"r.is_active": true})
	case "inactive":
		q = q.Where(squirrel.Eq{"r.is_active": false})
	}

	var rates []*packing.SpecialRate
	if err := selectAll(ctx, r.txm, q, &rates, "packing special rates"); err != nil {
		return nil, err
	}
	return rates, nil
}
