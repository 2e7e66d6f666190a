package pdf

import (
	"bytes"
	"io"

	"shareholder-backend/internal/agreement"

	"github.com/go-pdf/fpdf"
)

var _ agreement.Surface = (*Surface)(nil)

// Surface draws on an A4 portrait fpdf document in millimetres. Automatic
// page breaks are off; the caller decides when a page starts.
type Surface struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func NewSurface() *Surface {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetAutoPageBreak(false, 0)
	p.SetMargins(0, 0, 0)
	p.SetCreator("shareholder-backend", true)
	return &Surface{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func (s *Surface) AddPage() { s.pdf.AddPage() }

func (s *Surface) PageSize() (float64, float64) { return s.pdf.GetPageSize() }

func (s *Surface) Rect(x, y, w, h float64, fill agreement.RGB) {
	s.pdf.SetFillColor(fill.R, fill.G, fill.B)
	s.pdf.Rect(x, y, w, h, "F")
}

func (s *Surface) Line(x1, y1, x2, y2 float64) {
	s.pdf.SetDrawColor(190, 190, 190)
	s.pdf.SetLineWidth(0.2)
	s.pdf.Line(x1, y1, x2, y2)
}

func (s *Surface) font(st agreement.Style) float64 {
	style := ""
	if st.Bold {
		style += "B"
	}
	if st.Italic {
		style += "I"
	}
	family := st.Family
	if family == "" {
		family = "Helvetica"
	}
	size := st.Size
	if size <= 0 {
		size = 10
	}
	s.pdf.SetFont(family, style, size)
	s.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	return size
}

// pt → mm line box for single-line text
func lineBox(size float64) float64 { return size * 0.3528 * 1.3 }

func (s *Surface) Text(x, y, w float64, text string, st agreement.Style, align agreement.Align) {
	size := s.font(st)
	s.pdf.SetXY(x, y)
	s.pdf.CellFormat(w, lineBox(size), s.tr(text), "", 0, string(align), false, 0, "")
}

func (s *Surface) Paragraph(x, y, w float64, text string, st agreement.Style, align agreement.Align, lineHeight float64) float64 {
	s.font(st)
	s.pdf.SetXY(x, y)
	s.pdf.MultiCell(w, lineHeight, s.tr(text), "", string(align), false)
	return s.pdf.GetY() - y
}

func (s *Surface) Image(name string, img agreement.Image, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ImageType: img.Format}
	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if s.pdf.Err() {
		// an unreadable image must not poison the rest of the document
		err := s.pdf.Error()
		s.pdf.ClearError()
		return err
	}
	s.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

func (s *Surface) Output(w io.Writer) error { return s.pdf.Output(w) }

func (s *Surface) Err() error { return s.pdf.Error() }
