package handler

import (
	"net/http"

	"github.com/Jaysins/inventory-mgt-backend/internal/apierror"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// Add godoc
// @Summary Add stock to a warehouse
// @Tags stock
// @Accept json
// @Produce json
// @Param body body dto.AddStockRequest true "Stock addition"
// @Success 200 {object} apierror.Envelope{data=dto.StockRecordResponse}
// @Failure 409 {object} apierror.Envelope "capacity exceeded"
// @Router /v1/stock/add [post]
func (h *StockHandler) Add(c *gin.Context) {
	var req dto.AddStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddStock(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Stock added", resp)
}

func (h *StockHandler) Remove(c *gin.Context) {
	var req dto.RemoveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RemoveStock(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Stock removed", resp)
}

func (h *StockHandler) Transfer(c *gin.Context) {
	var req dto.TransferStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.TransferStock(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Stock transferred", resp)
}

func (h *StockHandler) List(c *gin.Context) {
	var filter dto.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Stock records retrieved", resp)
}
