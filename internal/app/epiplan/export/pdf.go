package export

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"epiplan/internal/app/epiplan/render"
)

// Layout of the printable page
type Layout struct {
	Margin      float64
	Unit        string
	Page        string
	Orientation string
}

// DefaultLayout is one inch margins on portrait letter
func DefaultLayout() Layout {
	return Layout{Margin: 1, Unit: "in", Page: "Letter", Orientation: "P"}
}

// Rasterizer turns document structure into a paginated file
type Rasterizer interface {
	Rasterize(ctx context.Context, doc render.Document, layout Layout, w io.Writer) error
}

// FPDF rasterizer with core fonts
type FPDF struct{}

// Rasterize writes document as PDF to w
func (FPDF) Rasterize(ctx context.Context, doc render.Document, layout Layout, w io.Writer) error {
	pdf := fpdf.New(layout.Orientation, layout.Unit, layout.Page, "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(true, layout.Margin)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// point sizes converted to layout units for line heights
	line := func(pt float64) float64 { return pdf.PointConvert(pt) * 1.4 }

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, line(24), tr(doc.ShowName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 12)
	pdf.CellFormat(0, line(12), tr(doc.Tagline), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, line(12), tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(line(12))

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, line(16), "Episode Timeline", "", 1, "L", false, 0, "")

	timeWidth := pdf.PointConvert(60)
	left, _, _, _ := pdf.GetMargins()
	for _, e := range doc.Timeline {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(timeWidth, line(11), tr(e.Time), "", 0, "L", false, 0, "")

		pdf.SetLeftMargin(left + timeWidth)
		if head := timelineHead(e); head != "" {
			pdf.MultiCell(0, line(11), tr(head), "", "L", false)
		}
		pdf.SetFont("Helvetica", "", 11)
		if e.Body != "" {
			pdf.MultiCell(0, line(11), tr(e.Body), "", "L", false)
		}
		if e.Link != "" {
			pdf.SetTextColor(40, 80, 200)
			pdf.MultiCell(0, line(10), tr(e.Link), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetLeftMargin(left)
		pdf.Ln(line(6))
	}

	if doc.HostNotes != "" {
		pdf.Ln(line(12))
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, line(16), "Host Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, line(11), tr(doc.HostNotes), "", "L", false)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func timelineHead(e render.TimelineEntry) string {
	switch {
	case e.Label != "" && e.Title != "":
		return e.Label + " " + e.Title
	case e.Label != "":
		return e.Label
	default:
		return e.Title
	}
}
