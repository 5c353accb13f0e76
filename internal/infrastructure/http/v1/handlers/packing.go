package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/domain/packing"
)

// PackingHandler handles packing recipe and special rate endpoints.
type PackingHandler struct {
	*BaseHandler
	service *packing.Service
}

// NewPackingHandler creates a new packing handler.
func NewPackingHandler(base *BaseHandler, service *packing.Service) *PackingHandler {
	return &PackingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// --- Recipes ---

// ListRecipes handles GET /packing/recipes?q=
func (h *PackingHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.service.ListRecipes(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles GET /packing/recipes/:id
func (h *PackingHandler) GetRecipe(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	recipe, err := h.service.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe handles POST /packing/recipes
func (h *PackingHandler) CreateRecipe(c *gin.Context) {
	var recipe packing.Recipe
	if !h.BindJSON(c, &recipe) {
		return
	}

	ok, msg := h.service.CreateRecipe(c.Request.Context(), &recipe, recipe.Materials)
	h.Outcome(c, ok, msg)
}

// UpdateRecipe handles PUT /packing/recipes/:id
func (h *PackingHandler) UpdateRecipe(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var recipe packing.Recipe
	if !h.BindJSON(c, &recipe) {
		return
	}

	ok, msg := h.service.UpdateRecipe(c.Request.Context(), id, &recipe, recipe.Materials)
	h.Outcome(c, ok, msg)
}

// --- Material lookups ---

// SearchMaterials handles GET /packing/materials/search?q=
func (h *PackingHandler) SearchMaterials(c *gin.Context) {
	items, err := h.service.SearchMaterials(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MaterialsForRate handles GET /packing/materials/for-rate
func (h *PackingHandler) MaterialsForRate(c *gin.Context) {
	items, err := h.service.MaterialsForRate(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MaterialUOM handles GET /packing/materials/:id/uom
// The grid asks for a unit whenever an item is picked; an unknown item
// answers with an empty unit rather than an error.
func (h *PackingHandler) MaterialUOM(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"uom": h.service.MaterialUOM(c.Request.Context(), id)})
}

// ListUOMs handles GET /packing/uoms
func (h *PackingHandler) ListUOMs(c *gin.Context) {
	uoms, err := h.service.ListUOMs(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, uoms)
}

// --- Special rates ---

// SaveRecipeSpecialRate handles POST /packing/recipes/:id/special-rates
func (h *PackingHandler) SaveRecipeSpecialRate(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	var rate packing.RecipeSpecialRate
	if !h.BindJSON(c, &rate) {
		return
	}
	rate.RecipeID = id

	ok, msg := h.service.SaveRecipeSpecialRate(c.Request.Context(), &rate, rate.Details)
	h.Outcome(c, ok, msg)
}

// ListSpecialRates handles GET /packing/special-rates
func (h *PackingHandler) ListSpecialRates(c *gin.Context) {
	filter := packing.SpecialRateFilter{
		GroupSearch:  c.Query("group"),
		FarmerSearch: c.Query("farmer"),
		Status:       c.Query("status"),
	}

	rates, err := h.service.ListSpecialRates(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

// GetSpecialRate handles GET /packing/special-rates/:id
func (h *PackingHandler) GetSpecialRate(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	rate, err := h.service.GetSpecialRate(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// CreateSpecialRate handles POST /packing/special-rates
func (h *PackingHandler) CreateSpecialRate(c *gin.Context) {
	var rate packing.SpecialRate
	if !h.BindJSON(c, &rate) {
		return
	}

	ok, msg := h.service.CreateSpecialRate(c.Request.Context(), &rate, rate.Details)
	h.Outcome(c, ok, msg)
}

// UpdateSpecialRate handles PUT /packing/special-rates/:id
func (h *PackingHandler) UpdateSpecialRate(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var rate packing.SpecialRate
	if !h.BindJSON(c, &rate) {
		return
	}

	ok, msg := h.service.UpdateSpecialRate(c.Request.Context(), id, &rate, rate.Details)
	h.Outcome(c, ok, msg)
}
