package overlay

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// drawQR stamps a QR code in the bottom-right corner of the text region.
func (c *Compositor) drawQR(dst draw.Image, content string) error {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	img := q.Image(c.opts.QRSize)

	textRegion := c.opts.Width - c.opts.ImageWidth
	x := textRegion - img.Bounds().Dx() - c.opts.Margin
	y := c.opts.Height - img.Bounds().Dy() - c.opts.Margin
	if x < 0 || y < 0 {
		return fmt.Errorf("qr code of %d px does not fit the text region", c.opts.QRSize)
	}

	r := image.Rect(x, y, x+img.Bounds().Dx(), y+img.Bounds().Dy())
	draw.Draw(dst, r, img, img.Bounds().Min, draw.Src)
	return nil
}
