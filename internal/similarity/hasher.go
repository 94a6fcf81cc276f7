// Package similarity computes perceptual signatures for screenshots
// and splits sessions whose members diverge visually.
package similarity

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/corona10/goimagehash"

	// Decoders for the image formats screenshots come in.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
)

// Hasher computes a perceptual signature for an image file.
type Hasher interface {
	HashFile(path string) (*goimagehash.ImageHash, error)
}

// PerceptionHasher is the default Hasher, backed by a 64-bit pHash.
type PerceptionHasher struct{}

func (PerceptionHasher) HashFile(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return goimagehash.PerceptionHash(img)
}

// EnrichHashes fills in the signature of every record that does not
// have one yet. Hashing is pure and per-record, so it fans out over a
// bounded worker pool; results land on the records themselves, which
// keeps them in original order. A record whose hash cannot be computed
// keeps a nil signature and warn, if non-nil, is invoked once for it.
func EnrichHashes(records []*catalog.Record, h Hasher, workers int, warn func(path string, err error)) {
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, len(records))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, r := range records {
		if r.Hash != nil {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, r *catalog.Record) {
			defer wg.Done()
			defer func() { <-sem }()
			hash, err := h.HashFile(r.Path)
			if err != nil {
				errs[i] = err
				return
			}
			r.Hash = hash
		}(i, r)
	}
	wg.Wait()

	if warn == nil {
		return
	}
	for i, err := range errs {
		if err != nil {
			warn(records[i].Path, err)
		}
	}
}
