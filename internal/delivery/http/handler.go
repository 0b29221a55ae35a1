package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/produktlister/backend/internal/domain"
)

// ProductFetcher runs one URL through the extraction and enrichment pipeline.
type ProductFetcher interface {
	Fetch(ctx context.Context, url string) *domain.ProductRecord
}

// BatchExporter writes a batch of records to an xlsx workbook.
type BatchExporter interface {
	Export(products []*domain.ProductRecord) (filePath, fileName string, err error)
}

// ConnectionTester probes the AI provider.
type ConnectionTester interface {
	TestConnection(ctx context.Context) domain.ConnectionStatus
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductFetcher
	exporter BatchExporter
	ai       ConnectionTester
	headers  []string
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductFetcher, exporter BatchExporter, ai ConnectionTester, headers []string) *Handler {
	return &Handler{
		products: products,
		exporter: exporter,
		ai:       ai,
		headers:  headers,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Backend çalışıyor",
	})
}

// GetProduct scrapes and enriches one product page. The record itself carries
// success or failure; the HTTP status is 200 either way so the frontend reads
// one shape.
func (h *Handler) GetProduct(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "URL gerekli",
		})
		return
	}

	rec := h.products.Fetch(c.Request.Context(), url)
	c.JSON(http.StatusOK, rec)
}

// ExportHeaders returns the spreadsheet column set in upload order.
func (h *Handler) ExportHeaders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"headers": h.headers,
	})
}

type exportRequest struct {
	Products []*domain.ProductRecord `json:"products"`
}

// ExportExcel writes the posted records to a workbook and streams it back as
// a file attachment.
func (h *Handler) ExportExcel(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Geçersiz istek gövdesi",
		})
		return
	}
	if len(req.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": domain.ErrEmptyExport.Error(),
		})
		return
	}

	filePath, fileName, err := h.exporter.Export(req.Products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.FileAttachment(filePath, fileName)
}

// TestAPI probes the AI provider and reports the structured result.
func (h *Handler) TestAPI(c *gin.Context) {
	status := h.ai.TestConnection(c.Request.Context())
	c.JSON(http.StatusOK, status)
}
