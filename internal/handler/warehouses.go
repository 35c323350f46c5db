package handler

import (
	"net/http"

	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type WarehousesHandler struct{ svc service.WarehouseService }

func NewWarehousesHandler(svc service.WarehouseService) *WarehousesHandler {
	return &WarehousesHandler{svc: svc}
}

func (h *WarehousesHandler) Create(c *gin.Context) {
	var req dto.CreateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Warehouse created", resp)
}

func (h *WarehousesHandler) Get(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Warehouse retrieved", resp)
}

func (h *WarehousesHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Warehouses retrieved", resp)
}

func (h *WarehousesHandler) Update(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	var req dto.UpdateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Warehouse updated", resp)
}

func (h *WarehousesHandler) Deactivate(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Warehouse deactivated", nil)
}

func (h *WarehousesHandler) Reactivate(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Warehouse reactivated", nil)
}

// Capacity godoc
// @Summary Warehouse capacity snapshot
// @Tags warehouses
// @Produce json
// @Param id path string true "Warehouse ID"
// @Success 200 {object} apierror.Envelope{data=dto.CapacityResponse}
// @Router /v1/warehouses/{id}/capacity [get]
func (h *WarehousesHandler) Capacity(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	resp, err := h.svc.CheckCapacity(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Capacity retrieved", resp)
}
