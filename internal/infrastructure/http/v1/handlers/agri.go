package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/domain/agri"
)

// AgriHandler handles grower group, farmer and lot endpoints.
type AgriHandler struct {
	*BaseHandler
	service *agri.Service
}

// NewAgriHandler creates a new agri master handler.
func NewAgriHandler(base *BaseHandler, service *agri.Service) *AgriHandler {
	return &AgriHandler{
		BaseHandler: base,
		service:     service,
	}
}

// --- Grower groups ---

// ListGroups handles GET /agri/groups
func (h *AgriHandler) ListGroups(c *gin.Context) {
	groups, err := h.service.ListGroups(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetGroup handles GET /agri/groups/:id
func (h *AgriHandler) GetGroup(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	group, err := h.service.GetGroup(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// CreateGroup handles POST /agri/groups
func (h *AgriHandler) CreateGroup(c *gin.Context) {
	var group agri.GrowerGroup
	if !h.BindJSON(c, &group) {
		return
	}

	ok, msg := h.service.CreateGroup(c.Request.Context(), &group)
	h.Outcome(c, ok, msg)
}

// UpdateGroup handles PUT /agri/groups/:id
func (h *AgriHandler) UpdateGroup(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var group agri.GrowerGroup
	if !h.BindJSON(c, &group) {
		return
	}

	ok, msg := h.service.UpdateGroup(c.Request.Context(), id, &group)
	h.Outcome(c, ok, msg)
}

// DeleteGroup handles DELETE /agri/groups/:id
func (h *AgriHandler) DeleteGroup(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	ok, msg := h.service.DeleteGroup(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// --- Farmers ---

// ListFarmers handles GET /agri/farmers?groupId=
func (h *AgriHandler) ListFarmers(c *gin.Context) {
	ctx := c.Request.Context()

	if groupID := h.ParseInt64Query(c, "groupId"); groupID != nil {
		farmers, err := h.service.ListGroupFarmers(ctx, *groupID)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, farmers)
		return
	}

	farmers, err := h.service.ListFarmers(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, farmers)
}

// GetFarmer handles GET /agri/farmers/:id
func (h *AgriHandler) GetFarmer(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	farmer, err := h.service.GetFarmer(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, farmer)
}

// CreateFarmer handles POST /agri/farmers
func (h *AgriHandler) CreateFarmer(c *gin.Context) {
	var farmer agri.Farmer
	if !h.BindJSON(c, &farmer) {
		return
	}

	ok, msg := h.service.CreateFarmer(c.Request.Context(), &farmer)
	h.Outcome(c, ok, msg)
}

// UpdateFarmer handles PUT /agri/farmers/:id
func (h *AgriHandler) UpdateFarmer(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var farmer agri.Farmer
	if !h.BindJSON(c, &farmer) {
		return
	}

	ok, msg := h.service.UpdateFarmer(c.Request.Context(), id, &farmer)
	h.Outcome(c, ok, msg)
}

// DeleteFarmer handles DELETE /agri/farmers/:id
func (h *AgriHandler) DeleteFarmer(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	ok, msg := h.service.DeleteFarmer(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// --- Lots ---

// ListGroupLots handles GET /agri/groups/:id/lots
func (h *AgriHandler) ListGroupLots(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	lots, err := h.service.ListGroupLots(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

// GetLot handles GET /agri/lots/:id
func (h *AgriHandler) GetLot(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	lot, err := h.service.GetLot(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}

// CreateLot handles POST /agri/lots
func (h *AgriHandler) CreateLot(c *gin.Context) {
	var lot agri.Lot
	if !h.BindJSON(c, &lot) {
		return
	}

	ok, msg := h.service.CreateLot(c.Request.Context(), &lot)
	h.Outcome(c, ok, msg)
}

// UpdateLot handles PUT /agri/lots/:id
func (h *AgriHandler) UpdateLot(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var lot agri.Lot
	if !h.BindJSON(c, &lot) {
		return
	}

	ok, msg := h.service.UpdateLot(c.Request.Context(), id, &lot)
	h.Outcome(c, ok, msg)
}

// DeleteLot handles DELETE /agri/lots/:id
func (h *AgriHandler) DeleteLot(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	ok, msg := h.service.DeleteLot(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}
