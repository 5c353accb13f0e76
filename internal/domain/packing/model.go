// Package packing holds packing recipes, their bill of materials, and
// the special rate overrides granted to grower groups and farmers.
package packing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
)

// PurchaseItem is a packing inventory item used as recipe material.
type PurchaseItem struct {
	ID            int64           `db:"id" json:"id"`
	Code          string          `db:"code" json:"code"`
	ItemName      string          `db:"item_name" json:"itemName"`
	UOM           string          `db:"uom" json:"uom"`
	InventoryType string          `db:"inventory_type" json:"inventoryType"`
	CostPerUnit   decimal.Decimal `db:"cost_per_unit" json:"costPerUnit"`
	IsActive      bool            `db:"is_active" json:"isActive"`
}

// InventoryTypePacking marks items selectable as recipe materials.
const InventoryTypePacking = "Packing Inventory"

// Recipe is a packing bill of materials with labour and density rates.
// Value is derived: the sum of its materials' values.
type Recipe struct {
	ID              int64           `db:"id" json:"id"`
	RecipeCode      string          `db:"recipe_code" json:"recipeCode"`
	RecipeName      string          `db:"recipe_name" json:"recipeName"`
	UOMName         string          `db:"uom_name" json:"uomName"`
	CostUnit        decimal.Decimal `db:"cost_unit" json:"costUnit"`
	LabourCost      decimal.Decimal `db:"labour_cost" json:"labourCost"`
	HighDensityRate decimal.Decimal `db:"high_density_rate" json:"highDensityRate"`
	Value           decimal.Decimal `db:"value" json:"value"`
	IsActive        bool            `db:"is_active" json:"isActive"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`

	Materials []*Material `db:"-" json:"materials"`
}

func (r *Recipe) Validate(ctx context.Context) error {
	if r.RecipeName == "" {
		return apperror.NewValidation("recipe name is required").
			WithDetail("field", "recipeName")
	}
	if r.UOMName == "" {
		return apperror.NewValidation("recipe UOM is required").
			WithDetail("field", "uomName")
	}
	return nil
}

// Material is one line of a recipe's bill of materials.
type Material struct {
	ID             int64           `db:"id" json:"id"`
	RecipeID       int64           `db:"recipe_id" json:"recipeId"`
	PurchaseItemID int64           `db:"purchase_item_id" json:"purchaseItemId"`
	ItemName       string          `db:"-" json:"itemName,omitempty"`
	Qty            decimal.Decimal `db:"qty" json:"qty"`
	UOM            string          `db:"uom" json:"uom"`
	Value          decimal.Decimal `db:"value" json:"value"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}

// RecipeSpecialRate overrides a recipe's high density rate for one
// grower group from a date onward.
type RecipeSpecialRate struct {
	ID              int64            `db:"id" json:"id"`
	RecipeID        int64            `db:"recipe_id" json:"recipeId"`
	GrowerGroupID   *int64           `db:"grower_group_id" json:"growerGroupId,omitempty"`
	EffectiveFrom   time.Time        `db:"effective_from" json:"effectiveFrom"`
	HighDensityRate *decimal.Decimal `db:"high_density_rate" json:"highDensityRate,omitempty"`
	IsActive        bool             `db:"is_active" json:"isActive"`
	CreatedAt       time.Time        `db:"created_at" json:"createdAt"`

	Details []*RecipeRateDetail `db:"-" json:"details"`
}

// RecipeRateDetail pins a per-item rate within a recipe special rate.
type RecipeRateDetail struct {
	ID             int64           `db:"id" json:"id"`
	SpecialRateID  int64           `db:"special_rate_id" json:"specialRateId"`
	PurchaseItemID int64           `db:"purchase_item_id" json:"purchaseItemId"`
	Rate           decimal.Decimal `db:"rate" json:"rate"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}

// SpecialRate overrides packing item rates for a grower group or a
// single farmer from an effective date.
type SpecialRate struct {
	ID            int64     `db:"id" json:"id"`
	EffectiveDate time.Time `db:"effective_date" json:"effectiveDate"`
	GrowerGroupID *int64    `db:"grower_group_id" json:"growerGroupId,omitempty"`
	FarmerID      *int64    `db:"farmer_id" json:"farmerId,omitempty"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`

	GroupName  string               `db:"-" json:"groupName,omitempty"`
	FarmerName string               `db:"-" json:"farmerName,omitempty"`
	Details    []*SpecialRateDetail `db:"-" json:"details"`
}

// SpecialRateDetail carries the standard and optional special rate of
// one packing item.
type SpecialRateDetail struct {
	ID             int64            `db:"id" json:"id"`
	SpecialRateID  int64            `db:"special_rate_id" json:"specialRateId"`
	PurchaseItemID int64            `db:"purchase_item_id" json:"purchaseItemId"`
	Rate           decimal.Decimal  `db:"rate" json:"rate"`
	SpecialRate    *decimal.Decimal `db:"special_rate" json:"specialRate,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"createdAt"`
}

// LookupItem is the picker shape for materials and farmers.
type LookupItem struct {
	ID   int64            `json:"id"`
	Name string           `json:"name"`
	UOM  string           `json:"uom,omitempty"`
	Rate *decimal.Decimal `json:"rate,omitempty"`
}
