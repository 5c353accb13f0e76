// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// --- Pagination ---

// PaginationRequest contains pagination parameters.
type PaginationRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// Defaults sets default pagination values.
func (p *PaginationRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginationResponse creates pagination response.
func NewPaginationResponse(page, pageSize int, totalItems int64) PaginationResponse {
	totalPages := int(totalItems) / pageSize
	if int(totalItems)%pageSize > 0 {
		totalPages++
	}
	return PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// --- Operation outcome ---

// OutcomeResponse reports a save/approve/delete outcome. The message
// strings come from the domain services and are shown to the user as-is.
type OutcomeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
