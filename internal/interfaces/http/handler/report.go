package handler

import (
	appledger "github.com/garage-erp/backend/internal/application/ledger"
	"github.com/garage-erp/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler exposes read-only summary endpoints
type ReportHandler struct {
	BaseHandler
	reports     *report.ReportService
	consistency *appledger.ConsistencyService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *report.ReportService, consistency *appledger.ConsistencyService) *ReportHandler {
	return &ReportHandler{reports: reports, consistency: consistency}
}

// PendingReceivables handles GET /reports/receivables
func (h *ReportHandler) PendingReceivables(c *gin.Context) {
	summary, err := h.reports.PendingReceivables(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SupplierPayables handles GET /reports/payables
func (h *ReportHandler) SupplierPayables(c *gin.Context) {
	summary, err := h.reports.SupplierPayables(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ConsistencyCheck handles GET /reports/consistency
func (h *ReportHandler) ConsistencyCheck(c *gin.Context) {
	checkReport, err := h.consistency.Check(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkReport)
}

// RegisterRoutes wires the report endpoints into the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/receivables", h.PendingReceivables)
		reports.GET("/payables", h.SupplierPayables)
		reports.GET("/consistency", h.ConsistencyCheck)
	}
}
