package similarity

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/corona10/goimagehash"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
)

func hashOf(bits uint64) *goimagehash.ImageHash {
	return goimagehash.NewImageHash(bits, goimagehash.PHash)
}

func sessionOf(records ...*catalog.Record) *catalog.Session {
	s := &catalog.Session{}
	for _, r := range records {
		s.Add(r)
	}
	return s
}

func TestRefine(t *testing.T) {
	base := time.Date(2025, 6, 19, 14, 0, 0, 0, time.UTC)
	rec := func(name string, bits uint64) *catalog.Record {
		return &catalog.Record{Path: name, CapturedAt: base, Hash: hashOf(bits)}
	}

	t.Run("splits on divergence", func(t *testing.T) {
		// 0x0 vs 0x3 differ by 2 bits, 0x3 vs 0xFFFF by 14.
		s := sessionOf(rec("a.png", 0x0), rec("b.png", 0x3), rec("c.png", 0xFFFF))
		parts := Refine([]*catalog.Session{s}, 10)
		if len(parts) != 2 {
			t.Fatalf("Expected 2 parts, got %d", len(parts))
		}
		if parts[0].Count() != 2 || parts[1].Count() != 1 {
			t.Errorf("Expected sizes 2 and 1, got %d and %d", parts[0].Count(), parts[1].Count())
		}
	})

	t.Run("distance at threshold stays together", func(t *testing.T) {
		s := sessionOf(rec("a.png", 0x0), rec("b.png", 0x3))
		parts := Refine([]*catalog.Session{s}, 2)
		if len(parts) != 1 {
			t.Errorf("Expected no split at exact threshold, got %d parts", len(parts))
		}
	})

	t.Run("missing hash never splits", func(t *testing.T) {
		s := sessionOf(
			rec("a.png", 0x0),
			&catalog.Record{Path: "corrupt.png", CapturedAt: base},
			rec("c.png", 0xFFFFFFFF),
		)
		parts := Refine([]*catalog.Session{s}, 1)
		if len(parts) != 1 {
			t.Errorf("Expected corrupt record to pass through, got %d parts", len(parts))
		}
	})

	t.Run("singleton untouched", func(t *testing.T) {
		s := sessionOf(rec("a.png", 0x0))
		parts := Refine([]*catalog.Session{s}, 10)
		if len(parts) != 1 || parts[0] != s {
			t.Error("Expected singleton session returned as-is")
		}
	})

	t.Run("covers members exactly once", func(t *testing.T) {
		s := sessionOf(rec("a.png", 0x0), rec("b.png", ^uint64(0)), rec("c.png", 0x0))
		parts := Refine([]*catalog.Session{s}, 1)
		total := 0
		for _, p := range parts {
			total += p.Count()
		}
		if total != 3 {
			t.Errorf("Expected 3 members across parts, got %d", total)
		}
	})
}

type stubHasher struct {
	hashes map[string]*goimagehash.ImageHash
}

func (h stubHasher) HashFile(path string) (*goimagehash.ImageHash, error) {
	if hash, ok := h.hashes[filepath.Base(path)]; ok {
		return hash, nil
	}
	return nil, errors.New("unsupported image")
}

func TestEnrichHashes(t *testing.T) {
	records := []*catalog.Record{
		{Path: "a.png"},
		{Path: "broken.png"},
		{Path: "c.png", Hash: hashOf(0x7)}, // already enriched
	}
	h := stubHasher{hashes: map[string]*goimagehash.ImageHash{
		"a.png": hashOf(0x1),
	}}

	var warned []string
	EnrichHashes(records, h, 4, func(path string, err error) {
		warned = append(warned, path)
	})

	if records[0].Hash == nil {
		t.Error("Expected a.png enriched")
	}
	if records[1].Hash != nil {
		t.Error("Expected broken.png to stay nil")
	}
	if records[2].Hash.GetHash() != 0x7 {
		t.Error("Expected existing hash untouched")
	}
	if len(warned) != 1 || !strings.Contains(warned[0], "broken.png") {
		t.Errorf("Expected one warning for broken.png, got %v", warned)
	}
}

func TestPerceptionHasher(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, c color.Color) string {
		img := image.NewRGBA(image.Rect(0, 0, 32, 32))
		for x := 0; x < 32; x++ {
			for y := 0; y < 32; y++ {
				img.Set(x, y, c)
			}
		}
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		return path
	}

	white := write("white.png", color.White)
	white2 := write("white2.png", color.White)

	var h PerceptionHasher
	h1, err := h.HashFile(white)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	h2, err := h.HashFile(white2)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	d, err := h1.Distance(h2)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 0 {
		t.Errorf("Identical images should have distance 0, got %d", d)
	}

	t.Run("corrupt file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.png")
		os.WriteFile(bad, []byte("not an image"), 0600)
		if _, err := h.HashFile(bad); err == nil {
			t.Error("Expected error for corrupt image")
		}
	})
}
