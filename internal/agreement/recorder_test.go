package agreement

import (
	"fmt"
	"io"
	"strings"
)

type op struct {
	kind  string
	text  string
	style Style
	x, y  float64
	h     float64 // paragraph height
}

// recorder is an in-memory Surface that keeps every draw call per page.
type recorder struct {
	w, h     float64
	pages    [][]op
	imageErr error
}

func newRecorder() *recorder { return &recorder{w: 210, h: 297} }

func (r *recorder) add(o op) {
	if len(r.pages) == 0 {
		panic("draw before AddPage")
	}
	r.pages[len(r.pages)-1] = append(r.pages[len(r.pages)-1], o)
}

func (r *recorder) AddPage() { r.pages = append(r.pages, nil) }
func (r *recorder) PageSize() (float64, float64) { return r.w, r.h }
func (r *recorder) Rect(x, y, w, h float64, _ RGB) {
	r.add(op{kind: "rect", x: x, y: y})
}
func (r *recorder) Line(x1, y1, _, _ float64) { r.add(op{kind: "line", x: x1, y: y1}) }
func (r *recorder) Text(x, y, _ float64, s string, st Style, _ Align) {
	r.add(op{kind: "text", text: s, style: st, x: x, y: y})
}
func (r *recorder) Paragraph(x, y, w float64, s string, st Style, _ Align, lh float64) float64 {
	h := TextHeight(s, w, st.Size, lh)
	r.add(op{kind: "para", text: s, style: st, x: x, y: y, h: h})
	return h
}
func (r *recorder) Image(name string, _ Image, x, y, _, _ float64) error {
	if r.imageErr != nil {
		return r.imageErr
	}
	r.add(op{kind: "image", text: name, x: x, y: y})
	return nil
}
func (r *recorder) Output(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d pages", len(r.pages))
	return err
}
func (r *recorder) Err() error { return nil }

func (r *recorder) texts(page int) []string {
	var out []string
	for _, o := range r.pages[page] {
		if o.kind == "text" || o.kind == "para" {
			out = append(out, o.text)
		}
	}
	return out
}

func (r *recorder) find(pred func(op) bool) []op {
	var out []op
	for _, p := range r.pages {
		for _, o := range p {
			if pred(o) {
				out = append(out, o)
			}
		}
	}
	return out
}

func (r *recorder) hasText(prefix string) bool {
	return len(r.find(func(o op) bool { return strings.HasPrefix(o.text, prefix) })) > 0
}
