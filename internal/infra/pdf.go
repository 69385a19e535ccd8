package infra

// pdf.go — report generation using go-pdf/fpdf. Produces an A4 landscape
// table of formularios for a period: store, supplier, space type, date
// window, agreed price and estado, with a totals line at the bottom.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexpardox/mercaproject/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReportePDF writes the period report to storagePath and returns the
// absolute path of the generated file.
func GenerateReportePDF(titulo, desde, hasta string, formularios []model.Formulario, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_formularios_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, titulo, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Periodo: %s a %s", desde, hasta), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Table header ──────────────────────────────────────────────────────────
	cols := []struct {
		w     float64
		label string
		align string
	}{
		{contentW * 0.16, "Tienda", "L"},
		{contentW * 0.20, "Proveedor", "L"},
		{contentW * 0.13, "Espacio", "L"},
		{contentW * 0.14, "Area", "L"},
		{contentW * 0.10, "Inicio", "C"},
		{contentW * 0.10, "Fin", "C"},
		{contentW * 0.09, "Precio", "R"},
		{contentW * 0.08, "Estado", "C"},
	}
	pdf.SetFont("Helvetica", "B", 8)
	for _, c := range cols {
		pdf.CellFormat(c.w, 6, c.label, "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	// ── Rows ──────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	total := decimal.Zero
	for i := range formularios {
		f := &formularios[i]
		proveedor := ""
		if f.Proveedor != nil {
			proveedor = f.Proveedor.Nombre
		}
		precio := ""
		if f.PrecioAcordado != nil {
			precio = "$" + f.PrecioAcordado.StringFixed(2)
			total = total.Add(*f.PrecioAcordado)
		}
		row := []string{
			recortar(f.NombreTienda, 26),
			recortar(proveedor, 32),
			string(f.TipoEspacio),
			recortar(f.AreaAsignada, 22),
			f.FechaInicio.Format("02/01/2006"),
			f.FechaFin.Format("02/01/2006"),
			precio,
			string(f.Estado),
		}
		for j, c := range cols {
			pdf.CellFormat(c.w, 5, row[j], "", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.73, 6, fmt.Sprintf("Formularios: %d", len(formularios)), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.19, 6, "Total acordado:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.08, 6, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func recortar(s string, max int) string {
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
