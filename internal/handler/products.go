package handler

import (
	"net/http"

	"github.com/Jaysins/inventory-mgt-backend/internal/apierror"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"
	"github.com/Jaysins/inventory-mgt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Product created", resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Product retrieved", resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter repository.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Products retrieved", resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Product updated", resp)
}

func (h *ProductsHandler) Deactivate(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Product deactivated", nil)
}

func (h *ProductsHandler) Reactivate(c *gin.Context) {
	id, found := parseID(c)
	if !found {
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Product reactivated", nil)
}
