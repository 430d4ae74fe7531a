package system

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestImagePool(t *testing.T) {
	p := NewImagePool()
	rect := image.Rect(0, 0, 16, 9)

	img := p.Get(rect)
	if img.Rect != rect {
		t.Fatalf("unexpected bounds %v", img.Rect)
	}
	p.Put(img)

	// Images of an unknown size are dropped rather than mixed in.
	p.Put(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	if got := p.Get(rect); got.Rect != rect {
		t.Errorf("pool returned wrong size %v", got.Rect)
	}
	p.Put(nil)
}

func TestImagePool_GetBlank(t *testing.T) {
	p := NewImagePool()
	rect := image.Rect(0, 0, 4, 4)

	img := p.Get(rect)
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	p.Put(img)

	blank := p.GetBlank(rect, image.Black)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := blank.RGBAAt(x, y); got != (color.RGBA{A: 0xff}) {
				t.Fatalf("pixel (%d,%d) = %v, want opaque black", x, y, got)
			}
		}
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if _, err := CheckFreeSpace(dir, 0); err != nil {
		t.Fatalf("check with no minimum failed: %v", err)
	}
	if _, err := CheckFreeSpace(dir, 1<<40); err == nil {
		t.Error("expected error when requiring an exabyte free")
	}
}

func TestCheckFFmpeg_Missing(t *testing.T) {
	if _, err := CheckFFmpeg("definitely-not-ffmpeg-binary"); err == nil {
		t.Error("expected error for missing binary")
	}
}
