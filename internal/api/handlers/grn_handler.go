// backend-go/internal/api/handlers/grn_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/service"
)

const maxGrnDocumentSize = 10 << 20 // 10 MiB

type GrnHandler struct {
	service *service.GrnService
}

func NewGrnHandler(service *service.GrnService) *GrnHandler {
	return &GrnHandler{service: service}
}

func (h *GrnHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *GrnHandler) Create(c *gin.Context) {
	var g domain.GrnRecord
	if err := c.ShouldBindJSON(&g); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), g)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *GrnHandler) Update(c *gin.Context) {
	var g domain.GrnRecord
	if err := c.ShouldBindJSON(&g); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), g); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *GrnHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UploadDocument accepts a multipart "file" field, stores it and returns
// the URL to reference in a record's docUrl.
func (h *GrnHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided", "details": err.Error()})
		return
	}
	if fileHeader.Size > maxGrnDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file", "details": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.service.UploadDocument(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
