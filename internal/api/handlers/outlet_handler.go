// backend-go/internal/api/handlers/outlet_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/service"
)

type OutletHandler struct {
	service *service.OutletService
}

func NewOutletHandler(service *service.OutletService) *OutletHandler {
	return &OutletHandler{service: service}
}

func (h *OutletHandler) List(c *gin.Context) {
	outlets, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outlets)
}

func (h *OutletHandler) Create(c *gin.Context) {
	var o domain.Outlet
	if err := c.ShouldBindJSON(&o); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), o)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *OutletHandler) Update(c *gin.Context) {
	var o domain.Outlet
	if err := c.ShouldBindJSON(&o); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), o); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *OutletHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Products returns the products listed at one outlet.
func (h *OutletHandler) Products(c *gin.Context) {
	products, err := h.service.ProductsAt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
