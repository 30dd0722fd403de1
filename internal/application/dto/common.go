package dto

// PageRequest paginación por número de página (1-based).
type PageRequest struct {
	Page  int `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" json:"limit" validate:"omitempty,min=1,max=200"`
}

// Normalize aplica valores por defecto si Page/Limit no vienen.
func (p *PageRequest) Normalize(defaultLimit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
}

// Offset = (page-1) × limit.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse calcula total_pages = ceil(total / limit).
func NewPageResponse(page, limit, total int) PageResponse {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageResponse{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	// ProductID producto sin stock suficiente (solo INSUFFICIENT_STOCK).
	ProductID *int64 `json:"product_id,omitempty"`
}
