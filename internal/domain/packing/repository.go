package packing

import (
	"context"
	"time"
)

// SpecialRateFilter narrows the special rate listing.
type SpecialRateFilter struct {
	GroupSearch  string
	FarmerSearch string
	// Status is "active", "inactive" or "" for all.
	Status string
}

// Repository persists packing recipes, materials and rate overrides.
type Repository interface {
	CreateRecipe(ctx context.Context, recipe *Recipe, materials []*Material) error
	GetRecipe(ctx context.Context, id int64) (*Recipe, error)
	// UpdateRecipe rewrites the recipe header and replaces its materials.
	UpdateRecipe(ctx context.Context, recipe *Recipe, materials []*Material) error
	ListRecipes(ctx context.Context, searchTerm string) ([]*Recipe, error)
	LastRecipeCode(ctx context.Context) (string, error)

	SearchMaterials(ctx context.Context, term string) ([]*PurchaseItem, error)
	GetMaterialItem(ctx context.Context, id int64) (*PurchaseItem, error)
	ListUOMs(ctx context.Context) ([]string, error)

	CreateRecipeSpecialRate(ctx context.Context, rate *RecipeSpecialRate, details []*RecipeRateDetail) error

	CreateSpecialRate(ctx context.Context, rate *SpecialRate, details []*SpecialRateDetail) error
	GetSpecialRate(ctx context.Context, id int64) (*SpecialRate, error)
	UpdateSpecialRate(ctx context.Context, rate *SpecialRate, details []*SpecialRateDetail) error
	ListSpecialRates(ctx context.Context, filter SpecialRateFilter) ([]*SpecialRate, error)
}

// nowFunc is swapped in tests.
var nowFunc = time.Now
