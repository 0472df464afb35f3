// backend-go/internal/api/handlers/expiry_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/service"
)

type ExpiryHandler struct {
	service *service.ExpiryService
}

func NewExpiryHandler(service *service.ExpiryService) *ExpiryHandler {
	return &ExpiryHandler{service: service}
}

// List returns the full ledger grouped by (outlet, product, batch),
// zero-quantity entries included.
func (h *ExpiryHandler) List(c *gin.Context) {
	groups, err := h.service.ListGrouped(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *ExpiryHandler) Create(c *gin.Context) {
	var e domain.ExpiryEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), e)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ExpiryHandler) Update(c *gin.Context) {
	var e domain.ExpiryEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), e); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ExpiryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// DeleteGroup removes every entry of one logical group. The response lists
// a per-record outcome; partial failures come back as 207.
func (h *ExpiryHandler) DeleteGroup(c *gin.Context) {
	results, err := h.service.DeleteGroup(
		c.Request.Context(),
		c.Param("outletId"),
		c.Param("productId"),
		c.Param("batchNo"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	for _, r := range results {
		if !r.OK {
			status = http.StatusMultiStatus
			break
		}
	}
	c.JSON(status, gin.H{"results": results})
}
