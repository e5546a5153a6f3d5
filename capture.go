package movieclip

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Capture queues a PNG capture of the next drawn frame, written to
// CaptureDir as <name>.png. Names are made file-safe. Playback scripts use
// this for visual regression checks.
func (s *Scene) Capture(name string) {
	s.captures = append(s.captures, safeFileName(name))
}

// flushCaptures writes every queued capture of screen. Runs at the end of
// Draw.
func (s *Scene) flushCaptures(screen *ebiten.Image) {
	if len(s.captures) == 0 {
		return
	}
	defer func() { s.captures = s.captures[:0] }()

	if err := os.MkdirAll(s.CaptureDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[movieclip] capture: %v\n", err)
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	for _, name := range s.captures {
		path := filepath.Join(s.CaptureDir, name+".png")
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[movieclip] capture: %v\n", err)
		}
	}
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to straight
// alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = uint8(min(int(img.Pix[i+c])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// safeFileName keeps letters, digits, '-' and '.', replacing everything
// else with '_'.
func safeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "capture"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, name)
}
