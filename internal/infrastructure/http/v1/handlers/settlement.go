package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/documents/settlement"
	"agriaccount/internal/domain/rules"
	"agriaccount/internal/infrastructure/http/v1/dto"
)

// SettlementHandler handles payment settlement endpoints.
type SettlementHandler struct {
	*BaseHandler
	service *settlement.Service
}

// NewSettlementHandler creates a new settlement handler.
func NewSettlementHandler(base *BaseHandler, service *settlement.Service) *SettlementHandler {
	return &SettlementHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /settlements
// Rows come back grouped by PA number.
func (h *SettlementHandler) List(c *gin.Context) {
	var req dto.SettlementFilter
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBatch handles GET /settlements/batch/:paNumber
func (h *SettlementHandler) GetBatch(c *gin.Context) {
	paNumber := c.Param("paNumber")
	if paNumber == "" {
		h.Error(c, apperror.NewValidation("pa number is required"))
		return
	}

	group, err := h.service.BatchDetails(c.Request.Context(), paNumber)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// CreateBatch handles POST /settlements
func (h *SettlementHandler) CreateBatch(c *gin.Context) {
	var req dto.SettlementBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ok, msg := h.service.CreateBatch(c.Request.Context(), req.Entries)
	h.Outcome(c, ok, msg)
}

// UpdateBatch handles PUT /settlements/batch/:paNumber
func (h *SettlementHandler) UpdateBatch(c *gin.Context) {
	paNumber := c.Param("paNumber")
	if paNumber == "" {
		h.Error(c, apperror.NewValidation("pa number is required"))
		return
	}

	var req dto.SettlementBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ok, msg := h.service.UpdateBatch(c.Request.Context(), paNumber, req.Entries)
	h.Outcome(c, ok, msg)
}

// Get handles GET /settlements/:id
func (h *SettlementHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	row, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// MarkPaid handles POST /settlements/:id/mark-paid
func (h *SettlementHandler) MarkPaid(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.MarkPaid(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// Approve handles POST /settlements/:id/approve
func (h *SettlementHandler) Approve(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Approve(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// Unapprove handles POST /settlements/:id/unapprove
// Refused once the settlement is paid.
func (h *SettlementHandler) Unapprove(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Unapprove(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// Delete handles DELETE /settlements/:id
func (h *SettlementHandler) Delete(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Delete(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// SearchAccounts handles GET /settlements/accounts?q=&role=
func (h *SettlementHandler) SearchAccounts(c *gin.Context) {
	role := rules.Role(c.DefaultQuery("role", string(rules.RoleDebit)))

	items, err := h.service.SearchAccounts(c.Request.Context(), c.Query("q"), role)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// EntryProfiles handles GET /settlements/entry-profiles
func (h *SettlementHandler) EntryProfiles(c *gin.Context) {
	profiles, err := h.service.EntryProfiles(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}
