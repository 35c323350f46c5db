package handler

import (
	"net/http"

	"github.com/Jaysins/inventory-mgt-backend/internal/apierror"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseOrdersHandler struct{ svc service.PurchaseOrderService }

func NewPurchaseOrdersHandler(svc service.PurchaseOrderService) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{svc: svc}
}

func (h *PurchaseOrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Purchase order created", resp)
}

func (h *PurchaseOrdersHandler) Get(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Purchase order retrieved", resp)
}

func (h *PurchaseOrdersHandler) List(c *gin.Context) {
	var filter dto.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Purchase orders retrieved", resp)
}

func (h *PurchaseOrdersHandler) Update(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	var req dto.UpdateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Purchase order updated", resp)
}

// Receive godoc
// @Summary Receive a pending purchase order into stock
// @Tags purchase-orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} apierror.Envelope{data=dto.OrderResponse}
// @Failure 409 {object} apierror.Envelope "invalid state or capacity exceeded"
// @Router /v1/purchase-orders/{id}/receive [post]
func (h *PurchaseOrdersHandler) Receive(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	resp, err := h.svc.Receive(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Purchase order received", resp)
}

func (h *PurchaseOrdersHandler) Cancel(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	resp, err := h.svc.Cancel(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Purchase order cancelled", resp)
}

// Document streams the rendered order sheet PDF.
func (h *PurchaseOrdersHandler) Document(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	path, err := h.svc.Document(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.FileAttachment(path, "order_"+id.String()+".pdf")
}
