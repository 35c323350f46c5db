package dto

type AuditListFilter struct {
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type AuditEventResponse struct {
	ID         string  `json:"id"`
	EntityType string  `json:"entity_type"`
	EntityID   *string `json:"entity_id"`
	Action     string  `json:"action"`
	Quantity   int     `json:"quantity"`
	Detail     string  `json:"detail"`
	CreatedAt  string  `json:"created_at"`
}

type AuditListResponse struct {
	Data  []AuditEventResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
