package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/domain/vendor"
)

// VendorHandler handles vendor master endpoints.
type VendorHandler struct {
	*BaseHandler
	service *vendor.Service
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(base *BaseHandler, service *vendor.Service) *VendorHandler {
	return &VendorHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /vendors
func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// Get handles GET /vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Search handles GET /vendors/search?q=
func (h *VendorHandler) Search(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create handles POST /vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var v vendor.Vendor
	if !h.BindJSON(c, &v) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), &v)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var v vendor.Vendor
	if !h.BindJSON(c, &v) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &v)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	ok, msg := h.service.Delete(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}
