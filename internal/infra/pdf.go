package infra

// pdf.go — purchase order document generation using go-pdf/fpdf.
// Renders a single-page A5 order sheet: supplier header, order metadata,
// line detail (product, quantity, unit cost), bold total, and notes.
// The output file is saved to storageDir/order_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrderPDF renders the purchase order document and returns the
// absolute path of the written file. The order must have Product, Supplier
// and Warehouse preloaded.
func GenerateOrderPDF(order *model.PurchaseOrder, storageDir string) (string, error) {
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("order_%s.pdf", order.ID)
	filePath := filepath.Join(storageDir, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "PURCHASE ORDER", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order %s", order.ID), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Parties ──────────────────────────────────────────────────────────────
	supplierName := ""
	if order.Supplier != nil {
		supplierName = order.Supplier.Name
	}
	warehouseName := ""
	if order.Warehouse != nil {
		warehouseName = order.Warehouse.Name + " — " + order.Warehouse.Location
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(28, 5, "Supplier:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW-28, 5, supplierName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(28, 5, "Deliver to:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW-28, 5, warehouseName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(28, 5, "Ordered:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW-28, 5, order.OrderDate.Format("02 Jan 2006"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(28, 5, "Expected:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW-28, 5, order.ExpectedArrivalDate.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Line detail ──────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.18 // unit cost
	col4 := contentW * 0.20 // line total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

	productName := ""
	if order.Product != nil {
		productName = order.Product.Name
		if len(productName) > 30 {
			productName = productName[:29] + "…"
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(col1, 6, productName, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", order.QuantityOrdered), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+order.UnitCost.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+order.TotalCost.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "ORDER TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+order.TotalCost.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Notes ────────────────────────────────────────────────────────────────
	if order.Notes != nil && *order.Notes != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Notes: "+*order.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
