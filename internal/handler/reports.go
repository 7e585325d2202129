package handler

import (
	"net/http"

	"shopledger/internal/apierror"
	"shopledger/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Get dispatches on the ?type= query parameter; "summary" is the default.
func (h *ReportsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	switch c.DefaultQuery("type", "summary") {
	case "summary":
		resp, err := h.svc.Summary(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	case "product-profit":
		resp, err := h.svc.ProductProfit(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	case "vendor-profit":
		resp, err := h.svc.VendorProfit(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	case "daily-sales":
		resp, err := h.svc.DailySales(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	default:
		c.JSON(http.StatusBadRequest, apierror.New("Invalid report type"))
	}
}

// Export streams the sales report as a PDF download.
func (h *ReportsHandler) Export(c *gin.Context) {
	path, err := h.svc.ExportPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "sales_report.pdf")
}
