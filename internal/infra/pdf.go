package infra

// pdf.go — Comprobante PDF generation using go-pdf/fpdf.
// Renders an A5 invoice with company header, invoice number and date, the
// client block, one table row per detalle and the store-computed total.
// The output file is saved to storagePath/factura_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateFacturaPDF renders the PDF comprobante for a persisted factura.
// The factura must carry its Cliente and Detalles.Producto associations.
// Returns the absolute path of the generated file.
func GenerateFacturaPDF(f *model.Factura, empresa, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("factura_%d.pdf", f.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, empresa, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Sistema de Facturación", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Invoice + client block ───────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, fmt.Sprintf("Factura N° %d", f.ID), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, f.Fecha.Format("02/01/2006"), "", 1, "R", false, 0, "")

	if f.Cliente != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Cliente: "+f.Cliente.Nombre, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, "Documento: "+f.Cliente.Documento, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Detalle table ────────────────────────────────────────────────────────
	col1 := contentW * 0.44 // producto
	col2 := contentW * 0.14 // cantidad
	col3 := contentW * 0.21 // precio
	col4 := contentW * 0.21 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range f.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if len(nombre) > 28 {
			nombre = nombre[:27] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+d.Precio.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+f.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Gracias por su compra", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
