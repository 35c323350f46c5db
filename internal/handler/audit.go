package handler

import (
	"net/http"

	"github.com/Jaysins/inventory-mgt-backend/internal/apierror"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct{ svc service.AuditService }

func NewAuditHandler(svc service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) List(c *gin.Context) {
	var filter dto.AuditListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Audit events retrieved", resp)
}
