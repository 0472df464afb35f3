// backend-go/internal/api/handlers/occurrence_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/service"
)

type OccurrenceHandler struct {
	service *service.OccurrenceService
}

func NewOccurrenceHandler(service *service.OccurrenceService) *OccurrenceHandler {
	return &OccurrenceHandler{service: service}
}

func (h *OccurrenceHandler) List(c *gin.Context) {
	filter := domain.OccurrenceFilter{
		Outlet: strings.TrimSpace(c.Query("outlet")),
		Status: strings.TrimSpace(c.Query("status")),
	}

	occurrences, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, occurrences)
}

func (h *OccurrenceHandler) Create(c *gin.Context) {
	var o domain.Occurrence
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

func (h *OccurrenceHandler) Update(c *gin.Context) {
	var o domain.Occurrence
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

func (h *OccurrenceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
