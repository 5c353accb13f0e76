package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/documents/receiptentry"
	"agriaccount/internal/domain/rules"
	"agriaccount/internal/infrastructure/http/v1/dto"
)

// ReceiptEntryHandler handles receipt voucher endpoints.
type ReceiptEntryHandler struct {
	*BaseHandler
	service *receiptentry.Service
}

// NewReceiptEntryHandler creates a new receipt voucher handler.
func NewReceiptEntryHandler(base *BaseHandler, service *receiptentry.Service) *ReceiptEntryHandler {
	return &ReceiptEntryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /receipt-vouchers
// Rows come back grouped by voucher number.
func (h *ReceiptEntryHandler) List(c *gin.Context) {
	var req dto.ReceiptEntryFilter
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

// GetVoucher handles GET /receipt-vouchers/:voucherNo
func (h *ReceiptEntryHandler) GetVoucher(c *gin.Context) {
	voucherNo := c.Param("voucherNo")
	if voucherNo == "" {
		h.Error(c, apperror.NewValidation("voucher number is required"))
		return
	}

	group, err := h.service.VoucherDetails(c.Request.Context(), voucherNo)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// CreateVoucher handles POST /receipt-vouchers
func (h *ReceiptEntryHandler) CreateVoucher(c *gin.Context) {
	var req dto.ReceiptVoucherRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ok, msg := h.service.CreateVoucher(c.Request.Context(), req.Entries)
	h.Outcome(c, ok, msg)
}

// UpdateVoucher handles PUT /receipt-vouchers/:voucherNo
func (h *ReceiptEntryHandler) UpdateVoucher(c *gin.Context) {
	voucherNo := c.Param("voucherNo")
	if voucherNo == "" {
		h.Error(c, apperror.NewValidation("voucher number is required"))
		return
	}

	var req dto.ReceiptVoucherRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ok, msg := h.service.UpdateVoucher(c.Request.Context(), voucherNo, req.Entries)
	h.Outcome(c, ok, msg)
}

// GetEntry handles GET /receipt-entries/:id
func (h *ReceiptEntryHandler) GetEntry(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Approve handles POST /receipt-entries/:id/approve
func (h *ReceiptEntryHandler) Approve(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Approve(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// Unapprove handles POST /receipt-entries/:id/unapprove
func (h *ReceiptEntryHandler) Unapprove(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Unapprove(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// Delete handles DELETE /receipt-entries/:id
func (h *ReceiptEntryHandler) Delete(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Delete(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// SearchAccounts handles GET /receipt-vouchers/accounts?q=&role=
func (h *ReceiptEntryHandler) SearchAccounts(c *gin.Context) {
	role := rules.Role(c.DefaultQuery("role", string(rules.RoleCredit)))

	items, err := h.service.SearchAccounts(c.Request.Context(), c.Query("q"), role)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// EntryProfiles handles GET /receipt-vouchers/entry-profiles
func (h *ReceiptEntryHandler) EntryProfiles(c *gin.Context) {
	profiles, err := h.service.EntryProfiles(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}
