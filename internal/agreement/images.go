package agreement

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/webp"
)

// Image is raster data in a format the surface embeds directly.
type Image struct {
	Format string // PNG, JPG or GIF
	Data   []byte
	Width  int // pixels
	Height int
}

// DecodeImage sniffs raw bytes. PNG, JPEG and GIF pass through untouched;
// WEBP is decoded and re-encoded as PNG.
func DecodeImage(data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decode image config: %w", err)
	}
	out := Image{Data: data, Width: cfg.Width, Height: cfg.Height}
	switch format {
	case "png":
		out.Format = "PNG"
	case "jpeg":
		out.Format = "JPG"
	case "gif":
		out.Format = "GIF"
	case "webp":
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return Image{}, fmt.Errorf("decode webp: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return Image{}, fmt.Errorf("encode png: %w", err)
		}
		out.Format, out.Data = "PNG", buf.Bytes()
	default:
		return Image{}, fmt.Errorf("unsupported image format %q", format)
	}
	return out, nil
}

// Fit scales the image into a w×h box keeping its aspect ratio.
func (i Image) Fit(w, h float64) (float64, float64) {
	if i.Width <= 0 || i.Height <= 0 {
		return w, h
	}
	ratio := float64(i.Width) / float64(i.Height)
	if w/h > ratio {
		return h * ratio, h
	}
	return w, w / ratio
}
