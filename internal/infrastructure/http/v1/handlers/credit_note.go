package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/documents/creditnote"
	"agriaccount/internal/domain/rules"
	"agriaccount/internal/infrastructure/http/v1/dto"
)

// CreditNoteHandler handles credit note endpoints.
type CreditNoteHandler struct {
	*BaseHandler
	service *creditnote.Service
}

// NewCreditNoteHandler creates a new credit note handler.
func NewCreditNoteHandler(base *BaseHandler, service *creditnote.Service) *CreditNoteHandler {
	return &CreditNoteHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /credit-notes
func (h *CreditNoteHandler) List(c *gin.Context) {
	var req dto.CreditNoteFilter
	if !h.BindQuery(c, &req) {
		return
	}

	filter := req.ToFilter()
	notes, total, _, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      notes,
		Pagination: dto.NewPaginationResponse(filter.Page, filter.PageSize, total),
	})
}

// Get handles GET /credit-notes/:id
func (h *CreditNoteHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	note, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Create handles POST /credit-notes
func (h *CreditNoteHandler) Create(c *gin.Context) {
	var note creditnote.CreditNote
	if !h.BindJSON(c, &note) {
		return
	}

	ok, msg := h.service.Create(c.Request.Context(), &note)
	h.Outcome(c, ok, msg)
}

// Update handles PUT /credit-notes/:id
func (h *CreditNoteHandler) Update(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	var note creditnote.CreditNote
	if !h.BindJSON(c, &note) {
		return
	}
	note.ID = id

	ok, msg := h.service.Update(c.Request.Context(), &note)
	h.Outcome(c, ok, msg)
}

// Approve handles POST /credit-notes/:id/approve
func (h *CreditNoteHandler) Approve(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Approve(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// Unapprove handles POST /credit-notes/:id/unapprove
func (h *CreditNoteHandler) Unapprove(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Unapprove(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// Delete handles DELETE /credit-notes/:id
func (h *CreditNoteHandler) Delete(c *gin.Context) {
	id, okID := h.ParseIDParam(c)
	if !okID {
		return
	}

	ok, msg := h.service.Delete(c.Request.Context(), id)
	h.Outcome(c, ok, msg)
}

// SearchAccounts handles GET /credit-notes/accounts?q=&role=&entryProfileId=
// Offers counterparty candidates the rule engine allows for the role.
func (h *CreditNoteHandler) SearchAccounts(c *gin.Context) {
	role := rules.Role(c.DefaultQuery("role", string(rules.RoleCredit)))
	profileID := h.ParseInt64Query(c, "entryProfileId")

	items := h.service.SearchAccounts(c.Request.Context(), c.Query("q"), profileID, role)
	c.JSON(http.StatusOK, items)
}

// InferProfile handles GET /credit-notes/infer-profile
// The form calls this once both legs are picked; a null profile id means
// neither leg forces one.
func (h *CreditNoteHandler) InferProfile(c *gin.Context) {
	note := &creditnote.CreditNote{
		CreditAccountKind: accounts.ParseKind(c.Query("creditType")),
		DebitAccountKind:  accounts.ParseKind(c.Query("debitType")),
	}
	if id := h.ParseInt64Query(c, "creditId"); id != nil {
		note.CreditAccountID = *id
	}
	if id := h.ParseInt64Query(c, "debitId"); id != nil {
		note.DebitAccountID = *id
	}
	c.JSON(http.StatusOK, gin.H{"entryProfileId": h.service.InferEntryProfile(c.Request.Context(), note)})
}

// EntryProfiles handles GET /credit-notes/entry-profiles
func (h *CreditNoteHandler) EntryProfiles(c *gin.Context) {
	profiles, err := h.service.EntryProfiles(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}
