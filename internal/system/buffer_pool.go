package system

import (
	"image"
	"image/draw"
	"sync"
)

// ImagePool reuses image.RGBA canvases keyed by their bounds, so each
// composite does not allocate a fresh ~8 MB frame.
type ImagePool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Rectangle]*sync.Pool)}
}

var globalPool = NewImagePool()

// GetBlank returns a canvas from the shared pool painted with bg.
func GetBlank(rect image.Rectangle, bg image.Image) *image.RGBA {
	return globalPool.GetBlank(rect, bg)
}

// PutImage hands a canvas back to the shared pool.
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					return image.NewRGBA(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

func (p *ImagePool) GetBlank(rect image.Rectangle, bg image.Image) *image.RGBA {
	img := p.Get(rect)
	draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)
	return img
}

// Put drops canvases whose size the pool has never handed out.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[img.Rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
