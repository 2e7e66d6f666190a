// Package agreement lays out the shareholder agreement on an abstract page
// surface. Pagination is owned here: surfaces never break pages on their own.
package agreement

import "io"

type Align string

const (
	AlignLeft    Align = "L"
	AlignCenter  Align = "C"
	AlignRight   Align = "R"
	AlignJustify Align = "J"
)

type RGB struct{ R, G, B int }

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

type Style struct {
	Family string // "Helvetica", "Times"
	Bold   bool
	Italic bool
	Size   float64 // points
	Color  RGB
}

// Surface is a page-oriented drawing target. Coordinates are millimetres
// from the top-left corner of the current page.
type Surface interface {
	AddPage()
	PageSize() (w, h float64)
	Rect(x, y, w, h float64, fill RGB)
	Line(x1, y1, x2, y2 float64)
	// Text draws a single line inside a box of width w.
	Text(x, y, w float64, s string, st Style, align Align)
	// Paragraph wraps s to width w and returns the height it used.
	Paragraph(x, y, w float64, s string, st Style, align Align, lineHeight float64) float64
	Image(name string, img Image, x, y, w, h float64) error
	Output(w io.Writer) error
	Err() error
}
