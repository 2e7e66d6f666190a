package agreement

import (
	"math"
	"strings"
	"unicode/utf8"
)

// average glyph advance as a fraction of the font size, in mm per point
const glyphWidthPerPt = 0.19

type Margins struct {
	Left, Right, Top, Bottom float64
}

// Decorator draws the chrome repeated on each page.
type Decorator interface {
	Header(s Surface, page int)
	Footer(s Surface, page int)
	HeaderHeight() float64
	FooterHeight() float64
}

// Layout is a flowing cursor over a Surface. Every block declares its
// height before drawing; a block that does not fit in what is left of the
// body starts a new page, which gets its header and footer immediately.
type Layout struct {
	s     Surface
	m     Margins
	decor Decorator

	page int
	y    float64
}

func NewLayout(s Surface, m Margins, d Decorator) *Layout {
	return &Layout{s: s, m: m, decor: d}
}

func (l *Layout) Surface() Surface { return l.s }
func (l *Layout) Page() int        { return l.page }
func (l *Layout) Cursor() float64  { return l.y }

func (l *Layout) Left() float64 { return l.m.Left }

func (l *Layout) Width() float64 {
	w, _ := l.s.PageSize()
	return w - l.m.Left - l.m.Right
}

func (l *Layout) bodyTop() float64 { return l.m.Top + l.decor.HeaderHeight() }

func (l *Layout) bodyBottom() float64 {
	_, h := l.s.PageSize()
	return h - l.m.Bottom - l.decor.FooterHeight()
}

// BodyHeight is the usable height of one page.
func (l *Layout) BodyHeight() float64 { return l.bodyBottom() - l.bodyTop() }

func (l *Layout) NewPage() {
	l.s.AddPage()
	l.page++
	l.decor.Header(l.s, l.page)
	l.decor.Footer(l.s, l.page)
	l.y = l.bodyTop()
}

func (l *Layout) fits(h float64) bool {
	return l.page > 0 && l.y+h <= l.bodyBottom()
}

// Block reserves h, breaking the page first when needed, then calls draw
// with the top of the reserved area. draw may report a taller actual
// height; the cursor advances by the larger of the two but never past the
// body bottom. A block taller than BodyHeight cannot be kept off the footer:
// split such text with SplitText first.
func (l *Layout) Block(h float64, draw func(y float64) float64) {
	if !l.fits(h) {
		l.NewPage()
	}
	used := draw(l.y)
	l.y = math.Min(l.y+math.Max(h, used), l.bodyBottom())
}

// Space advances the cursor without drawing. Space is never carried to a new page.
func (l *Layout) Space(h float64) {
	if l.page == 0 {
		return
	}
	l.y = math.Min(l.y+h, l.bodyBottom())
}

// CharsPerLine estimates how many glyphs fit in width at a font size.
func CharsPerLine(width, size float64) int {
	n := int(width / (size * glyphWidthPerPt))
	if n < 1 {
		return 1
	}
	return n
}

// SplitText cuts text into pieces whose TextHeight at width is at most maxH.
// Cuts prefer the last space inside the budget.
func SplitText(text string, width, size, lineHeight, maxH float64) []string {
	lines := int(maxH / lineHeight)
	if lines < 1 {
		lines = 1
	}
	budget := lines * CharsPerLine(width, size)
	runes := []rune(text)
	var out []string
	for len(runes) > budget {
		cut := budget
		for i := budget; i > budget/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	return append(out, string(runes))
}

// TextHeight estimates a wrapped block as ceil(len/charsPerLine) lines.
func TextHeight(text string, width, size, lineHeight float64) float64 {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return lineHeight
	}
	lines := math.Ceil(float64(n) / float64(CharsPerLine(width, size)))
	return lines * lineHeight
}
