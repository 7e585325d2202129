package infra

// pdf.go — Sales report PDF export using go-pdf/fpdf.
// Renders the all-time summary figures followed by the daily-sales
// table (most recent days first). The output file is written to
// storagePath/sales_report_{timestamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shopledger/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateSalesReportPDF writes the report to storagePath (created if
// needed) and returns the absolute path of the generated file.
func GenerateSalesReportPDF(summary *dto.SummaryReport, daily []dto.DailySalesRow, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("sales_report_%s.pdf", time.Now().UTC().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("Jan 2, 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Summary block ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Summary", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 10)
	summaryRows := []struct{ label, value string }{
		{"Total sales", fmt.Sprintf("%d", summary.TotalSales)},
		{"Units sold", fmt.Sprintf("%d", summary.TotalQuantity)},
		{"Revenue", "$" + summary.TotalSalesAmount.StringFixed(2)},
		{"Profit", "$" + summary.TotalProfit.StringFixed(2)},
	}
	for _, row := range summaryRows {
		pdf.CellFormat(contentW*0.4, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.6, 6, row.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Daily sales table ────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Daily Sales (last 30 days)", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	col1 := contentW * 0.28 // date
	col2 := contentW * 0.14 // sales
	col3 := contentW * 0.16 // quantity
	col4 := contentW * 0.21 // revenue
	col5 := contentW * 0.21 // profit

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Sales", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 6, "Units", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Revenue", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Profit", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, day := range daily {
		pdf.CellFormat(col1, 6, day.Date, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", day.TotalSales), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", day.TotalQuantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+day.TotalRevenue.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "$"+day.TotalProfit.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if len(daily) == 0 {
		pdf.CellFormat(contentW, 6, "No sales recorded.", "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
