package packing

import (
	"context"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/sequence"
)

// Service implements packing recipe and special rate operations.
type Service struct {
	repo Repository
	seq  *sequence.Generator
}

func NewService(repo Repository, seq *sequence.Generator) *Service {
	return &Service{repo: repo, seq: seq}
}

// --- Recipes ---

func (s *Service) ListRecipes(ctx context.Context, searchTerm string) ([]*Recipe, error) {
	return s.repo.ListRecipes(ctx, searchTerm)
}

func (s *Service) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	return s.repo.GetRecipe(ctx, id)
}

// CreateRecipe assigns the next 4-digit code, drops malformed material
// rows, derives the recipe value from the kept rows and inserts
// everything.
func (s *Service) CreateRecipe(ctx context.Context, recipe *Recipe, materials []*Material) (bool, string) {
	if err := recipe.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	kept := filterMaterials(materials)
	recipe.RecipeCode = s.seq.NextCode(ctx, sequence.PackingRecipes())
	recipe.CreatedAt = nowFunc()
	recipe.Value = sumValues(kept)
	for _, m := range kept {
		m.CreatedAt = recipe.CreatedAt
	}
	if err := s.repo.CreateRecipe(ctx, recipe, kept); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Packing Recipe created successfully!"
}

// UpdateRecipe rewrites the header and replaces the bill of materials.
// The code and creation stamp survive.
func (s *Service) UpdateRecipe(ctx context.Context, id int64, recipe *Recipe, materials []*Material) (bool, string) {
	existing, err := s.repo.GetRecipe(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	if err := recipe.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	kept := filterMaterials(materials)
	recipe.ID = id
	recipe.RecipeCode = existing.RecipeCode
	recipe.CreatedAt = existing.CreatedAt
	recipe.Value = sumValues(kept)
	now := nowFunc()
	for _, m := range kept {
		m.RecipeID = id
		m.CreatedAt = now
	}
	if err := s.repo.UpdateRecipe(ctx, recipe, kept); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Updated successfully"
}

// SearchMaterials returns active packing inventory items as picker rows.
func (s *Service) SearchMaterials(ctx context.Context, term string) ([]LookupItem, error) {
	items, err := s.repo.SearchMaterials(ctx, term)
	if err != nil {
		return nil, err
	}
	out := make([]LookupItem, 0, len(items))
	for _, item := range items {
		out = append(out, LookupItem{ID: item.ID, Name: item.ItemName, UOM: item.UOM})
	}
	return out, nil
}

// MaterialUOM resolves one item's unit of measure, "" when absent.
func (s *Service) MaterialUOM(ctx context.Context, id int64) string {
	item, err := s.repo.GetMaterialItem(ctx, id)
	if err != nil || item == nil {
		return ""
	}
	return item.UOM
}

func (s *Service) ListUOMs(ctx context.Context) ([]string, error) {
	return s.repo.ListUOMs(ctx)
}

// MaterialsForRate returns packing items with their standard rates for
// the special rate form.
func (s *Service) MaterialsForRate(ctx context.Context) ([]LookupItem, error) {
	items, err := s.repo.SearchMaterials(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]LookupItem, 0, len(items))
	for _, item := range items {
		rate := item.CostPerUnit
		out = append(out, LookupItem{ID: item.ID, Name: item.ItemName, Rate: &rate})
	}
	return out, nil
}

// --- Recipe special rates ---

// SaveRecipeSpecialRate records a per-group override of a recipe's
// rates. Detail rows without a purchase item are dropped.
func (s *Service) SaveRecipeSpecialRate(ctx context.Context, rate *RecipeSpecialRate, details []*RecipeRateDetail) (bool, string) {
	if _, err := s.repo.GetRecipe(ctx, rate.RecipeID); err != nil {
		return false, "Not found"
	}
	rate.CreatedAt = nowFunc()
	rate.IsActive = true
	kept := make([]*RecipeRateDetail, 0, len(details))
	for _, d := range details {
		if d.PurchaseItemID <= 0 {
			continue
		}
		d.CreatedAt = rate.CreatedAt
		kept = append(kept, d)
	}
	if err := s.repo.CreateRecipeSpecialRate(ctx, rate, kept); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Special Rate saved successfully!"
}

// --- Packing special rates ---

func (s *Service) ListSpecialRates(ctx context.Context, filter SpecialRateFilter) ([]*SpecialRate, error) {
	return s.repo.ListSpecialRates(ctx, filter)
}

func (s *Service) GetSpecialRate(ctx context.Context, id int64) (*SpecialRate, error) {
	return s.repo.GetSpecialRate(ctx, id)
}

// CreateSpecialRate inserts a rate set for a group or farmer. Detail
// rows without a purchase item are dropped.
func (s *Service) CreateSpecialRate(ctx context.Context, rate *SpecialRate, details []*SpecialRateDetail) (bool, string) {
	rate.CreatedAt = nowFunc()
	kept := filterDetails(details, 0)
	if err := s.repo.CreateSpecialRate(ctx, rate, kept); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Created successfully"
}

// UpdateSpecialRate rewrites the header and replaces the detail rows.
func (s *Service) UpdateSpecialRate(ctx context.Context, id int64, rate *SpecialRate, details []*SpecialRateDetail) (bool, string) {
	existing, err := s.repo.GetSpecialRate(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	rate.ID = id
	rate.CreatedAt = existing.CreatedAt
	kept := filterDetails(details, id)
	if err := s.repo.UpdateSpecialRate(ctx, rate, kept); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Updated successfully"
}

func filterMaterials(materials []*Material) []*Material {
	kept := make([]*Material, 0, len(materials))
	for _, m := range materials {
		if m == nil || m.PurchaseItemID <= 0 {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func filterDetails(details []*SpecialRateDetail, rateID int64) []*SpecialRateDetail {
	kept := make([]*SpecialRateDetail, 0, len(details))
	now := nowFunc()
	for _, d := range details {
		if d == nil || d.PurchaseItemID <= 0 {
			continue
		}
		if rateID > 0 {
			d.SpecialRateID = rateID
		}
		d.CreatedAt = now
		kept = append(kept, d)
	}
	return kept
}

func sumValues(materials []*Material) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(m.Value)
	}
	return total
}
