package handler

import (
	"net/http"

	"github.com/Jaysins/inventory-mgt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ReorderHandler struct{ svc service.ReorderService }

func NewReorderHandler(svc service.ReorderService) *ReorderHandler {
	return &ReorderHandler{svc: svc}
}

// Scan godoc
// @Summary Run the reorder scan and create purchase orders for low stock
// @Tags reorder
// @Produce json
// @Success 200 {object} apierror.Envelope{data=dto.ReorderScanResponse}
// @Router /v1/reorder/scan [post]
func (h *ReorderHandler) Scan(c *gin.Context) {
	resp, err := h.svc.Scan(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Reorder scan completed", resp)
}
