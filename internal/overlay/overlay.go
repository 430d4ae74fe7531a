// Package overlay composes a rendered solar-system frame and its annotation
// into a fixed-size video frame: text on the left, the image scaled and
// right-aligned.
package overlay

import (
	"fmt"
	"image"
	"log"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/solar2video/internal/annotation"
	"github.com/ivlev/solar2video/internal/system"
)

type Options struct {
	Width      int // output frame
	Height     int
	ImageWidth int // width the source image is scaled to
	FontSize   float64
	FontPath   string // empty means the bundled Go Regular face
	Margin     int
	LineHeight int
	QR         bool
	QRSize     int
}

// DefaultOptions lays out a 1920x1080 frame with a 1024 px wide image.
func DefaultOptions() Options {
	return Options{
		Width:      1920,
		Height:     1080,
		ImageWidth: 1024,
		FontSize:   40,
		Margin:     50,
		LineHeight: 45,
		QRSize:     160,
	}
}

type Compositor struct {
	opts   Options
	face   font.Face
	ascent int
}

func NewCompositor(opts Options) (*Compositor, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.ImageWidth <= 0 || opts.ImageWidth > opts.Width {
		return nil, fmt.Errorf("invalid layout %dx%d with image width %d", opts.Width, opts.Height, opts.ImageWidth)
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = int(opts.FontSize*1.125 + 0.5)
	}
	if opts.QRSize <= 0 {
		opts.QRSize = 160
	}

	face, err := loadFace(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}
	return &Compositor{opts: opts, face: face, ascent: face.Metrics().Ascent.Ceil()}, nil
}

func loadFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[!] Could not load font from %s, using Go Regular: %v", path, err)
		} else {
			data = b
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		// Font collections (.ttc) hold several faces; take the first.
		coll, cerr := opentype.ParseCollection(data)
		if cerr != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		if f, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// ImageRect is where a source of the given size lands on the frame.
func (c *Compositor) ImageRect(src image.Rectangle) image.Rectangle {
	w := c.opts.ImageWidth
	h := w * src.Dy() / max(src.Dx(), 1)
	if h > c.opts.Height {
		h = c.opts.Height
		w = h * src.Dx() / max(src.Dy(), 1)
	}
	x := c.opts.Width - w
	y := (c.opts.Height - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// Compose draws a new frame. The returned canvas comes from the shared image
// pool; hand it back with system.PutImage once it has been written out.
func (c *Compositor) Compose(src image.Image, a annotation.FrameAnnotation) (*image.RGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("frame %d: empty source image", a.Index)
	}

	canvas := system.GetBlank(image.Rect(0, 0, c.opts.Width, c.opts.Height), image.Black)

	draw.CatmullRom.Scale(canvas, c.ImageRect(src.Bounds()), src, src.Bounds(), draw.Over, nil)

	d := &font.Drawer{Dst: canvas, Src: image.White, Face: c.face}
	y := c.opts.Margin
	for _, line := range a.Lines() {
		if line != "" {
			d.Dot = fixed.P(c.opts.Margin, y+c.ascent)
			d.DrawString(line)
		}
		y += c.opts.LineHeight
	}

	if c.opts.QR {
		if err := c.drawQR(canvas, a.Stamp()); err != nil {
			system.PutImage(canvas)
			return nil, fmt.Errorf("frame %d: %w", a.Index, err)
		}
	}
	return canvas, nil
}

func (c *Compositor) Close() error {
	return c.face.Close()
}
