// backend-go/internal/api/handlers/analysis_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
	"github.com/andresuchdata/merchview/backend-go/internal/service"
)

type AnalysisHandler struct {
	service *service.AnalysisService
}

func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

func (h *AnalysisHandler) parseFilter(c *gin.Context) expiry.Filter {
	return expiry.Filter{
		OutletID:  strings.TrimSpace(c.Query("outlet_id")),
		ProductID: strings.TrimSpace(c.Query("product_id")),
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
		Month:     strings.TrimSpace(c.Query("month")),
		Year:      strings.TrimSpace(c.Query("year")),
	}
}

// Report serves the analysis payload. The service returns it already
// JSON-encoded (possibly straight from cache), so it is written as-is.
func (h *AnalysisHandler) Report(c *gin.Context) {
	payload, err := h.service.Report(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *AnalysisHandler) ExportDetail(c *gin.Context) {
	filename, payload, err := h.service.ExportDetail(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeCSV(c, filename, payload)
}

func (h *AnalysisHandler) ExportEntries(c *gin.Context) {
	filename, payload, err := h.service.ExportEntries(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeCSV(c, filename, payload)
}

func (h *AnalysisHandler) ExportMonthly(c *gin.Context) {
	filename, payload, err := h.service.ExportMonthly(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeCSV(c, filename, payload)
}

func writeCSV(c *gin.Context, filename string, payload []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
