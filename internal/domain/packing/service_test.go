package packing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/core/sequence"
)

type memRepo struct {
	nextRecipeID int64
	recipes      map[int64]*Recipe
	lastCode     string

	items map[int64]*PurchaseItem

	recipeRates []*RecipeSpecialRate

	nextRateID int64
	rates      map[int64]*SpecialRate
}

func newMemRepo() *memRepo {
	return &memRepo{
		recipes: make(map[int64]*Recipe),
		items:   make(map[int64]*PurchaseItem),
		rates:   make(map[int64]*SpecialRate),
	}
}

func (m *memRepo) CreateRecipe(ctx context.Context, recipe *Recipe, materials []*Material) error {
	m.nextRecipeID++
	recipe.ID = m.nextRecipeID
	copied := *recipe
	copied.Materials = materials
	m.recipes[recipe.ID] = &copied
	m.lastCode = recipe.RecipeCode
	return nil
}

func (m *memRepo) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	r, ok := m.recipes[id]
	if !ok || !r.IsActive {
		return nil, apperror.NewNotFound("packing recipe", id)
	}
	copied := *r
	return &copied, nil
}

func (m *memRepo) UpdateRecipe(ctx context.Context, recipe *Recipe, materials []*Material) error {
	copied := *recipe
	copied.Materials = materials
	copied.IsActive = m.recipes[recipe.ID].IsActive
	m.recipes[recipe.ID] = &copied
	return nil
}

func (m *memRepo) ListRecipes(ctx context.Context, searchTerm string) ([]*Recipe, error) {
	var out []*Recipe
	for _, r := range m.recipes {
		if r.IsActive {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memRepo) LastRecipeCode(ctx context.Context) (string, error) {
	return m.lastCode, nil
}

func (m *memRepo) SearchMaterials(ctx context.Context, term string) ([]*PurchaseItem, error) {
	var out []*PurchaseItem
	for _, item := range m.items {
		if item.IsActive {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memRepo) GetMaterialItem(ctx context.Context, id int64) (*PurchaseItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, apperror.NewNotFound("purchase item", id)
	}
	copied := *item
	return &copied, nil
}

func (m *memRepo) ListUOMs(ctx context.Context) ([]string, error) {
	return []string{"KG", "NOS"}, nil
}

func (m *memRepo) CreateRecipeSpecialRate(ctx context.Context, rate *RecipeSpecialRate, details []*RecipeRateDetail) error {
	copied := *rate
	copied.Details = details
	m.recipeRates = append(m.recipeRates, &copied)
	return nil
}

func (m *memRepo) CreateSpecialRate(ctx context.Context, rate *SpecialRate, details []*SpecialRateDetail) error {
	m.nextRateID++
	rate.ID = m.nextRateID
	copied := *rate
	copied.Details = details
	m.rates[rate.ID] = &copied
	return nil
}

func (m *memRepo) GetSpecialRate(ctx context.Context, id int64) (*SpecialRate, error) {
	r, ok := m.rates[id]
	if !ok {
		return nil, apperror.NewNotFound("special rate", id)
	}
	copied := *r
	return &copied, nil
}

func (m *memRepo) UpdateSpecialRate(ctx context.Context, rate *SpecialRate, details []*SpecialRateDetail) error {
	copied := *rate
	copied.Details = details
	m.rates[rate.ID] = &copied
	return nil
}

func (m *memRepo) ListSpecialRates(ctx context.Context, filter SpecialRateFilter) ([]*SpecialRate, error) {
	var out []*SpecialRate
	for _, r := range m.rates {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

type recipeCodes struct {
	repo *memRepo
}

func (r *recipeCodes) LastCode(ctx context.Context, series sequence.Series) (string, error) {
	return r.repo.LastRecipeCode(ctx)
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	seq := sequence.NewGenerator(&recipeCodes{repo: repo})
	return NewService(repo, seq), repo
}

func validRecipe() *Recipe {
	return &Recipe{
		RecipeName:      "5kg Carton",
		UOMName:         "NOS",
		CostUnit:        decimal.NewFromInt(1),
		LabourCost:      decimal.NewFromInt(4),
		HighDensityRate: decimal.NewFromInt(2),
		IsActive:        true,
	}
}

func material(itemID int64, value int64) *Material {
	return &Material{
		PurchaseItemID: itemID,
		Qty:            decimal.NewFromInt(1),
		UOM:            "NOS",
		Value:          decimal.NewFromInt(value),
	}
}

func TestCreateRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns 4-digit codes and derives the value", func(t *testing.T) {
		svc, _ := newTestService()

		first := validRecipe()
		ok, msg := svc.CreateRecipe(ctx, first, []*Material{material(1, 12), material(2, 8)})
		if !ok || msg != "Packing Recipe created successfully!" {
			t.Fatalf("CreateRecipe() = %v, %q", ok, msg)
		}
		if first.RecipeCode != "0001" {
			t.Errorf("RecipeCode = %q, want 0001", first.RecipeCode)
		}
		if !first.Value.Equal(decimal.NewFromInt(20)) {
			t.Errorf("Value = %s, want 20", first.Value)
		}

		second := validRecipe()
		svc.CreateRecipe(ctx, second, nil)
		if second.RecipeCode != "0002" {
			t.Errorf("RecipeCode = %q, want 0002", second.RecipeCode)
		}
	})

	t.Run("malformed material rows are dropped", func(t *testing.T) {
		svc, repo := newTestService()

		recipe := validRecipe()
		rows := []*Material{material(1, 10), material(0, 99), nil, material(2, 5)}
		ok, _ := svc.CreateRecipe(ctx, recipe, rows)
		if !ok {
			t.Fatal("CreateRecipe() failed")
		}

		stored := repo.recipes[recipe.ID]
		if len(stored.Materials) != 2 {
			t.Fatalf("stored materials = %d, want 2", len(stored.Materials))
		}
		if !recipe.Value.Equal(decimal.NewFromInt(15)) {
			t.Errorf("Value = %s, want 15", recipe.Value)
		}
	})

	t.Run("recipe UOM is required", func(t *testing.T) {
		svc, _ := newTestService()
		recipe := validRecipe()
		recipe.UOMName = ""
		ok, msg := svc.CreateRecipe(ctx, recipe, nil)
		if ok || msg != "Error: recipe UOM is required" {
			t.Errorf("CreateRecipe() = %v, %q", ok, msg)
		}
	})
}

func TestUpdateRecipeKeepsCode(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	recipe := validRecipe()
	svc.CreateRecipe(ctx, recipe, []*Material{material(1, 10)})

	replacement := validRecipe()
	replacement.RecipeName = "5kg Carton v2"
	ok, msg := svc.UpdateRecipe(ctx, recipe.ID, replacement, []*Material{material(2, 30)})
	if !ok || msg != "Updated successfully" {
		t.Fatalf("UpdateRecipe() = %v, %q", ok, msg)
	}

	stored := repo.recipes[recipe.ID]
	if stored.RecipeCode != "0001" {
		t.Errorf("RecipeCode = %q, want 0001", stored.RecipeCode)
	}
	if !stored.Value.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Value = %s, want 30", stored.Value)
	}
	if stored.Materials[0].RecipeID != recipe.ID {
		t.Errorf("material RecipeID = %d, want %d", stored.Materials[0].RecipeID, recipe.ID)
	}

	ok, msg = svc.UpdateRecipe(ctx, 999, validRecipe(), nil)
	if ok || msg != "Not found" {
		t.Errorf("UpdateRecipe(missing) = %v, %q", ok, msg)
	}
}

func TestMaterialLookups(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	repo.items[1] = &PurchaseItem{ID: 1, ItemName: "Carton Box", UOM: "NOS", CostPerUnit: decimal.NewFromInt(12), InventoryType: InventoryTypePacking, IsActive: true}
	repo.items[2] = &PurchaseItem{ID: 2, ItemName: "Retired Liner", UOM: "NOS", IsActive: false}

	items, err := svc.SearchMaterials(ctx, "car")
	if err != nil {
		t.Fatalf("SearchMaterials() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Carton Box" {
		t.Fatalf("SearchMaterials() = %+v", items)
	}

	if uom := svc.MaterialUOM(ctx, 1); uom != "NOS" {
		t.Errorf("MaterialUOM(1) = %q", uom)
	}
	if uom := svc.MaterialUOM(ctx, 99); uom != "" {
		t.Errorf("MaterialUOM(missing) = %q, want empty", uom)
	}

	rated, err := svc.MaterialsForRate(ctx)
	if err != nil {
		t.Fatalf("MaterialsForRate() error = %v", err)
	}
	if len(rated) != 1 || rated[0].Rate == nil || !rated[0].Rate.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("MaterialsForRate() = %+v", rated)
	}
}

func TestSaveRecipeSpecialRate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	recipe := validRecipe()
	svc.CreateRecipe(ctx, recipe, nil)

	groupID := int64(2)
	rate := &RecipeSpecialRate{
		RecipeID:      recipe.ID,
		GrowerGroupID: &groupID,
		EffectiveFrom: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	details := []*RecipeRateDetail{
		{PurchaseItemID: 1, Rate: decimal.NewFromInt(9)},
		{PurchaseItemID: 0, Rate: decimal.NewFromInt(5)},
	}
	ok, msg := svc.SaveRecipeSpecialRate(ctx, rate, details)
	if !ok || msg != "Special Rate saved successfully!" {
		t.Fatalf("SaveRecipeSpecialRate() = %v, %q", ok, msg)
	}
	if len(repo.recipeRates) != 1 {
		t.Fatal("rate not stored")
	}
	if got := len(repo.recipeRates[0].Details); got != 1 {
		t.Errorf("stored details = %d, want 1", got)
	}
	if !rate.IsActive {
		t.Error("IsActive = false, want true")
	}

	ok, msg = svc.SaveRecipeSpecialRate(ctx, &RecipeSpecialRate{RecipeID: 999}, nil)
	if ok || msg != "Not found" {
		t.Errorf("SaveRecipeSpecialRate(missing recipe) = %v, %q", ok, msg)
	}
}

func TestSpecialRates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	farmerID := int64(7)
	rate := &SpecialRate{
		EffectiveDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		FarmerID:      &farmerID,
		IsActive:      true,
	}
	special := decimal.NewFromInt(8)
	details := []*SpecialRateDetail{
		{PurchaseItemID: 1, Rate: decimal.NewFromInt(10), SpecialRate: &special},
		{PurchaseItemID: -3, Rate: decimal.NewFromInt(2)},
	}
	ok, msg := svc.CreateSpecialRate(ctx, rate, details)
	if !ok || msg != "Created successfully" {
		t.Fatalf("CreateSpecialRate() = %v, %q", ok, msg)
	}
	if got := len(repo.rates[rate.ID].Details); got != 1 {
		t.Errorf("stored details = %d, want 1", got)
	}

	update := &SpecialRate{EffectiveDate: rate.EffectiveDate, FarmerID: &farmerID, IsActive: false}
	ok, msg = svc.UpdateSpecialRate(ctx, rate.ID, update, []*SpecialRateDetail{{PurchaseItemID: 2, Rate: decimal.NewFromInt(4)}})
	if !ok || msg != "Updated successfully" {
		t.Fatalf("UpdateSpecialRate() = %v, %q", ok, msg)
	}
	stored := repo.rates[rate.ID]
	if stored.Details[0].SpecialRateID != rate.ID {
		t.Errorf("detail SpecialRateID = %d, want %d", stored.Details[0].SpecialRateID, rate.ID)
	}

	ok, msg = svc.UpdateSpecialRate(ctx, 999, update, nil)
	if ok || msg != "Not found" {
		t.Errorf("UpdateSpecialRate(missing) = %v, %q", ok, msg)
	}
}
