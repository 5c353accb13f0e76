package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/domain/bank"
)

// BankHandler handles bank master and ledger endpoints.
type BankHandler struct {
	*BaseHandler
	service *bank.Service
}

// NewBankHandler creates a new bank handler.
func NewBankHandler(base *BaseHandler, service *bank.Service) *BankHandler {
	return &BankHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListAccounts handles GET /banks?ledgerId=
func (h *BankHandler) ListAccounts(c *gin.Context) {
	ctx := c.Request.Context()

	if ledgerID := h.ParseInt64Query(c, "ledgerId"); ledgerID != nil {
		accounts, err := h.service.ListAccountsByLedger(ctx, *ledgerID)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, accounts)
		return
	}

	accounts, err := h.service.ListAccounts(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAccount handles GET /banks/:id
func (h *BankHandler) GetAccount(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	account, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// CreateAccount handles POST /banks
func (h *BankHandler) CreateAccount(c *gin.Context) {
	var account bank.BankMaster
	if !h.BindJSON(c, &account) {
		return
	}

	ok, msg := h.service.CreateAccount(c.Request.Context(), &account, h.GetUserName(c))
	h.Outcome(c, ok, msg)
}

// UpdateAccount handles PUT /banks/:id
func (h *BankHandler) UpdateAccount(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var account bank.BankMaster
	if !h.BindJSON(c, &account) {
		return
	}

	ok, msg := h.service.UpdateAccount(c.Request.Context(), id, &account)
	h.Outcome(c, ok, msg)
}

// DeleteAccount handles DELETE /banks/:id
func (h *BankHandler) DeleteAccount(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	ok, msg := h.service.DeleteAccount(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// ListLedgers handles GET /banks/ledgers
func (h *BankHandler) ListLedgers(c *gin.Context) {
	ledgers, err := h.service.ListLedgers(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgers)
}

// ListMasterGroups handles GET /banks/master-groups
func (h *BankHandler) ListMasterGroups(c *gin.Context) {
	groups, err := h.service.ListMasterGroups(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}
