package agreement

import (
	"fmt"
	"strings"
	"time"

	"shareholder-backend/internal/domain/shareholder"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const Title = "SHAREHOLDER AGREEMENT"

type Branding struct {
	CompanyName        string
	Email              string
	Phone              string
	AuthoritySignature string // typed in the authority panel
	Currency           string // prefix for amounts, e.g. "INR"
}

// Document is everything the agreement shows for one shareholder.
type Document struct {
	AgreementID       string
	SubmittedAt       time.Time
	Holder            shareholder.Shareholder
	StageName         string
	DividendsReceived decimal.Decimal
	Photo             *Image
	Signature         *Image
}

var (
	accent    = RGB{24, 64, 120}
	stripFill = RGB{236, 240, 246}
	panelFill = RGB{248, 248, 248}
	muted     = RGB{90, 90, 90}

	bodyStyle    = Style{Family: "Helvetica", Size: 10, Color: Black}
	labelStyle   = Style{Family: "Helvetica", Bold: true, Size: 10, Color: muted}
	sectionStyle = Style{Family: "Helvetica", Bold: true, Size: 12, Color: White}
	typedSig     = Style{Family: "Times", Bold: true, Italic: true, Size: 20, Color: accent}
)

const (
	lineH      = 5.0
	sectionH   = 8.0
	labelW     = 55.0
	photoBoxW  = 32.0
	photoBoxH  = 38.0
	sigPanelH  = 42.0
	sigPanelGp = 8.0
)

var clauses = []struct{ title, body string }{
	{"Allotment of Shares", "The Company agrees to allot to the Investor the number of shares stated in this Agreement at the price per share applicable to the investment stage in force on the date of submission. The price, stage and total investment recorded in this Agreement are final and are not revised by any later change in stage pricing."},
	{"Ownership", "The ownership percentage stated in this Agreement is computed against a fixed base of one thousand (1,000) shares. Ownership confers the economic rights described in this Agreement and does not by itself confer any right to participate in the management of the Company."},
	{"Dividends", "Dividends, when declared, are distributed among approved investors in proportion to the number of shares held. Goods and Services Tax at the applicable rate is deducted at source and the net amount is paid through the payment method on record. Amounts are rounded to the nearest paisa for each investor individually."},
	{"Approval", "This Agreement takes effect only upon approval of the application by the Company. The Company may approve or reject an application at its discretion and may revise the status of an application where the information supplied is found to be incomplete or inaccurate."},
	{"Transfer and Nomination", "The Investor may not sell, pledge or otherwise transfer the shares to a third party without the prior written consent of the Company. On the death of the Investor, all entitlements under this Agreement pass to the nominee named in this Agreement."},
	{"Confidentiality", "Each party shall keep confidential the terms of this Agreement and any non-public information received from the other party, except where disclosure is required by law or by a competent authority."},
	{"Governing Law and Disputes", "This Agreement is governed by the laws of India. Any dispute arising out of or in connection with this Agreement shall first be referred to good-faith negotiation and, failing resolution within thirty days, to the courts having jurisdiction over the registered office of the Company."},
}

type Renderer struct {
	brand Branding
	log   logrus.FieldLogger
}

func NewRenderer(b Branding, log logrus.FieldLogger) *Renderer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if b.Currency == "" {
		b.Currency = "INR"
	}
	return &Renderer{brand: b, log: log.WithField("component", "agreement")}
}

// Render lays the whole agreement onto s and returns the page count.
func (r *Renderer) Render(s Surface, d Document) (int, error) {
	l := NewLayout(s, Margins{Left: 15, Right: 15, Top: 10, Bottom: 10}, chrome{brand: r.brand})
	l.NewPage()

	r.metaStrip(l, d)
	r.photo(l, d)

	h := d.Holder
	r.section(l, "Personal Information")
	r.rows(l, [][2]string{
		{"Full Name", h.FullName},
		{"Username", h.Username},
		{"Email", h.Email},
		{"Phone", h.Phone},
		{"Address", h.Address},
		{"Nominee", h.NomineeName},
		{"Category", roleLabel(h.Role)},
	})

	approved := "Pending"
	if h.ApprovedAt != nil {
		approved = h.ApprovedAt.UTC().Format("02 Jan 2006")
	}
	r.section(l, "Investment Details")
	r.rows(l, [][2]string{
		{"Investment Stage", fmt.Sprintf("Stage %d (%s)", h.Stage, d.StageName)},
		{"Price per Share", r.money(h.PricePerShare)},
		{"Number of Shares", fmt.Sprintf("%d", h.NumShares)},
		{"Total Investment", r.money(h.TotalInvestment)},
		{"Ownership", h.OwnershipPercent().StringFixed(2) + "%"},
		{"Status", string(h.Status)},
		{"Approved On", approved},
		{"Dividends Received", r.money(d.DividendsReceived)},
	})

	r.section(l, "Terms and Conditions")
	for i, c := range clauses {
		r.paragraph(l, fmt.Sprintf("%d. %s. %s", i+1, c.title, c.body))
	}

	r.section(l, "Declaration")
	r.paragraph(l, fmt.Sprintf("I, %s, declare that the information given in this Agreement is true and complete to the best of my knowledge, that I have read and understood the terms above, and that I enter into this Agreement of my own free will.", orDash(h.FullName)))

	r.signatures(l, d)

	contact := fmt.Sprintf("For any queries regarding this Agreement, contact %s at %s or %s.", r.brand.CompanyName, r.brand.Email, r.brand.Phone)
	l.Space(4)
	l.Block(lineH, func(y float64) float64 {
		s.Text(l.Left(), y, l.Width(), contact, Style{Family: "Helvetica", Italic: true, Size: 9, Color: muted}, AlignCenter)
		return lineH
	})

	if err := s.Err(); err != nil {
		return l.Page(), err
	}
	return l.Page(), nil
}

func (r *Renderer) metaStrip(l *Layout, d Document) {
	s := l.Surface()
	h := d.Holder
	items := []string{
		"Agreement ID: " + d.AgreementID,
		"Submitted: " + d.SubmittedAt.UTC().Format("02 Jan 2006"),
		fmt.Sprintf("Stage %d @ %s/share", h.Stage, r.money(h.PricePerShare)),
	}
	const stripH = 10.0
	l.Block(stripH, func(y float64) float64 {
		s.Rect(l.Left(), y, l.Width(), stripH, stripFill)
		colW := l.Width() / float64(len(items))
		for i, it := range items {
			s.Text(l.Left()+float64(i)*colW, y+2.5, colW, it, Style{Family: "Helvetica", Bold: true, Size: 9, Color: accent}, AlignCenter)
		}
		return stripH
	})
	l.Space(4)
}

func (r *Renderer) photo(l *Layout, d Document) {
	if d.Photo == nil {
		return
	}
	s := l.Surface()
	l.Block(photoBoxH+6, func(y float64) float64 {
		x := l.Left() + l.Width() - photoBoxW
		s.Rect(x-1, y-1, photoBoxW+2, photoBoxH+2, stripFill)
		w, h := d.Photo.Fit(photoBoxW, photoBoxH)
		if err := s.Image("photo", *d.Photo, x+(photoBoxW-w)/2, y+(photoBoxH-h)/2, w, h); err != nil {
			r.log.WithError(err).WithField("shareholder_id", d.Holder.ID).Warn("photo skipped")
		}
		s.Text(x, y+photoBoxH+1, photoBoxW, "Investor Photograph", Style{Family: "Helvetica", Size: 7, Color: muted}, AlignCenter)
		return photoBoxH + 6
	})
}

func (r *Renderer) section(l *Layout, title string) {
	s := l.Surface()
	l.Space(3)
	// keep a heading with at least one line of what follows
	l.Block(sectionH+lineH+2, func(y float64) float64 {
		s.Rect(l.Left(), y, l.Width(), sectionH, accent)
		s.Text(l.Left()+3, y+1.5, l.Width()-6, title, sectionStyle, AlignLeft)
		return sectionH + 2
	})
}

func (r *Renderer) rows(l *Layout, kv [][2]string) {
	s := l.Surface()
	valueW := l.Width() - labelW
	for _, row := range kv {
		// an over-long value continues on the next page under an empty label
		label := row[0]
		for _, value := range SplitText(orDash(row[1]), valueW, bodyStyle.Size, lineH, l.BodyHeight()-1.5) {
			h := TextHeight(value, valueW, bodyStyle.Size, lineH) + 1.5
			l.Block(h, func(y float64) float64 {
				s.Text(l.Left(), y, labelW, label, labelStyle, AlignLeft)
				used := s.Paragraph(l.Left()+labelW, y, valueW, value, bodyStyle, AlignLeft, lineH)
				s.Line(l.Left(), y+h-0.5, l.Left()+l.Width(), y+h-0.5)
				return used + 1.5
			})
			label = ""
		}
	}
}

func (r *Renderer) paragraph(l *Layout, text string) {
	s := l.Surface()
	for _, piece := range SplitText(text, l.Width(), bodyStyle.Size, lineH, l.BodyHeight()-2) {
		h := TextHeight(piece, l.Width(), bodyStyle.Size, lineH)
		l.Block(h+2, func(y float64) float64 {
			return s.Paragraph(l.Left(), y, l.Width(), piece, bodyStyle, AlignJustify, lineH) + 2
		})
	}
}

func (r *Renderer) signatures(l *Layout, d Document) {
	s := l.Surface()
	l.Space(6)
	panelW := (l.Width() - sigPanelGp) / 2
	l.Block(sigPanelH, func(y float64) float64 {
		left := l.Left()
		right := left + panelW + sigPanelGp
		r.signaturePanel(s, left, y, panelW, "Investor Signature", orDash(d.Holder.FullName), d.Signature, d.Holder.SignatureText, d.Holder.ID)
		r.signaturePanel(s, right, y, panelW, "For "+r.brand.CompanyName, "Authorized Signatory", nil, r.brand.AuthoritySignature, d.Holder.ID)
		return sigPanelH
	})
}

// signaturePanel prefers an image, then typed text, then a blank line to sign on.
func (r *Renderer) signaturePanel(s Surface, x, y, w float64, title, caption string, img *Image, typed string, holderID uint64) {
	s.Rect(x, y, w, sigPanelH, panelFill)
	s.Text(x+2, y+2, w-4, title, labelStyle, AlignLeft)

	areaY, areaH := y+9, 20.0
	drawn := false
	if img != nil {
		iw, ih := img.Fit(w-10, areaH)
		if err := s.Image(fmt.Sprintf("signature-%d", holderID), *img, x+(w-iw)/2, areaY+(areaH-ih)/2, iw, ih); err != nil {
			r.log.WithError(err).WithField("shareholder_id", holderID).Warn("signature image skipped")
		} else {
			drawn = true
		}
	}
	if !drawn && strings.TrimSpace(typed) != "" {
		s.Text(x+2, areaY+6, w-4, typed, typedSig, AlignCenter)
		drawn = true
	}
	if !drawn {
		s.Line(x+8, areaY+areaH-2, x+w-8, areaY+areaH-2)
	}
	s.Text(x+2, y+sigPanelH-8, w-4, caption, Style{Family: "Helvetica", Size: 9, Color: muted}, AlignCenter)
}

func (r *Renderer) money(d decimal.Decimal) string {
	return r.brand.Currency + " " + groupThousands(d.StringFixed(2))
}

// groupThousands inserts commas into a fixed-point string: 120000.00 → 120,000.00.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}

func roleLabel(r shareholder.Role) string {
	switch r {
	case shareholder.RoleDriver:
		return "Driver"
	case shareholder.RoleTravelAgent:
		return "Travel Agent"
	case shareholder.RoleShopsHotels:
		return "Shops & Hotels"
	case shareholder.RoleAdmin:
		return "Administrator"
	}
	return string(r)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// chrome is the page header band and the footer with the running page number.
type chrome struct{ brand Branding }

func (chrome) HeaderHeight() float64 { return 24 }
func (chrome) FooterHeight() float64 { return 12 }

func (c chrome) Header(s Surface, page int) {
	w, _ := s.PageSize()
	s.Rect(0, 0, w, 22, accent)
	s.Text(15, 5, w-30, c.brand.CompanyName, Style{Family: "Helvetica", Bold: true, Size: 16, Color: White}, AlignLeft)
	s.Text(15, 13, w-30, Title, Style{Family: "Helvetica", Size: 10, Color: White}, AlignLeft)
}

func (c chrome) Footer(s Surface, page int) {
	w, h := s.PageSize()
	y := h - 10 - 8
	s.Line(15, y, w-15, y)
	foot := Style{Family: "Helvetica", Size: 8, Color: muted}
	s.Text(15, y+2, (w-30)/2, c.brand.CompanyName+" | "+c.brand.Email, foot, AlignLeft)
	s.Text(w/2, y+2, (w-30)/2, PageLabel(page), foot, AlignRight)
}

func PageLabel(page int) string { return fmt.Sprintf("Page %d", page) }
