// Package export renders patterns to device and preview formats: raw
// RGB24 byte streams for hardware upload, PNG stills, and animated GIFs.
package export

import (
	"image"
	"sync"
)

// pool is a thread-safe pool for reusing NRGBA scratch images.
//
// Frames of one export job all share the same dimensions, so buffers are
// grouped by size and reused across frames. This keeps GC pressure flat
// when exporting long animations.
type pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*image.NRGBA
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identically-sized images.
type poolKey struct {
	width  int
	height int
}

func newPool(maxPerBucket int) *pool {
	return &pool{
		buckets: make(map[poolKey][]*image.NRGBA),
		maxSize: maxPerBucket,
	}
}

// get retrieves a scratch image from the pool or allocates a new one.
// Reused images are cleared before being returned.
func (p *pool) get(width, height int) *image.NRGBA {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		img := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(img.Pix)
		return img
	}
	p.mu.Unlock()

	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

// put returns a scratch image to the pool for reuse. If the bucket is
// at capacity the image is discarded.
func (p *pool) put(img *image.NRGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey{width: b.Dx(), height: b.Dy()}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// defaultPool is the package-level pool shared by all export jobs.
var defaultPool = newPool(8)
