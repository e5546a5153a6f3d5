package movieclip

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"math"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion describes a sub-rectangle within an atlas page.
// Value type, stored directly on Node and in keyframes.
type TextureRegion struct {
	Page      uint16 // atlas page index (references Scene.pages)
	X, Y      uint16 // top-left corner of the sub-image rect within the atlas page
	Width     uint16 // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    uint16 // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed sprite width as authored
	OriginalH uint16 // untrimmed sprite height as authored
	OffsetX   int16  // horizontal trim offset from TexturePacker
	OffsetY   int16  // vertical trim offset from TexturePacker
	Rotated   bool   // true if the region is stored 90 degrees clockwise in the atlas
}

// Atlas holds one or more atlas page images and a map of named regions.
// Region names are indexed in sequence order when the atlas is built.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages []*ebiten.Image
	// PageImages holds the image file name of each page when the atlas
	// data names them (multi-page exports).
	PageImages []string

	regions map[string]TextureRegion
	order   []string
}

// NewAtlas creates an atlas from already known regions. Used by tests and
// by programs that build their pages at runtime.
func NewAtlas(pages []*ebiten.Image, regions map[string]TextureRegion) *Atlas {
	a := &Atlas{Pages: pages, regions: make(map[string]TextureRegion, len(regions))}
	for name, r := range regions {
		a.regions[name] = r
	}
	a.index()
	return a
}

// index sorts region names by their trailing frame number ("walk_2.png"
// before "walk_10.png"). Names without a number sort after numbered ones,
// alphabetically.
func (a *Atlas) index() {
	a.order = a.order[:0]
	for name := range a.regions {
		a.order = append(a.order, name)
	}
	slices.SortFunc(a.order, compareFrameNames)
}

func compareFrameNames(x, y string) int {
	nx, okx := trailingNumber(x)
	ny, oky := trailingNumber(y)
	switch {
	case okx && oky && nx != ny:
		return cmp.Compare(nx, ny)
	case okx != oky:
		if okx {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}

// Region returns the TextureRegion for the given name.
// If the name doesn't exist, it logs a warning (debug mode) and returns
// a 1x1 magenta placeholder region on page index magentaPlaceholderPage.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if globalDebug {
		log.Printf("movieclip: atlas region %q not found, using magenta placeholder", name)
	}
	return magentaRegion()
}

// Has reports whether the atlas contains a region called name.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// Sequence returns the regions whose names start with prefix in frame
// order, ready to hand to NewClipDataFromRegions.
func (a *Atlas) Sequence(prefix string) []TextureRegion {
	var out []TextureRegion
	for _, name := range a.order {
		if strings.HasPrefix(name, prefix) {
			out = append(out, a.regions[name])
		}
	}
	return out
}

// trailingNumber extracts the integer at the end of a region name, ignoring
// a file extension.
func trailingNumber(name string) (int, bool) {
	base := strings.TrimSuffix(name, path.Ext(name))
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	if i == len(base) {
		return 0, false
	}
	n, err := strconv.Atoi(base[i:])
	return n, err == nil
}

// magenta placeholder singleton (no sync.Once: single-threaded)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// magentaPlaceholderPage is a sentinel page index used for magenta placeholders.
// It's high enough to never collide with real atlas pages.
const magentaPlaceholderPage = 0xFFFF

func magentaRegion() TextureRegion {
	return TextureRegion{
		Page:      magentaPlaceholderPage,
		Width:     1,
		Height:    1,
		OriginalW: 1,
		OriginalH: 1,
	}
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// images. Accepted layouts:
//
//   - "frames" as an object keyed by region name (JSON hash export)
//   - "frames" as a list of entries carrying a "filename" (JSON array export)
//   - "textures" as a list of pages, each with its own "image" and "frames"
//     (multi-pack export); regions land on the page at their list index
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var sheet packedSheet
	if err := json.Unmarshal(jsonData, &sheet); err != nil {
		return nil, fmt.Errorf("movieclip: failed to parse atlas JSON: %w", err)
	}

	a := &Atlas{Pages: pages, regions: make(map[string]TextureRegion)}
	switch {
	case sheet.Textures != nil:
		for i, page := range sheet.Textures {
			a.PageImages = append(a.PageImages, page.Image)
			if err := a.addFrames(page.Frames, uint16(i)); err != nil {
				return nil, fmt.Errorf("movieclip: atlas page %d: %w", i, err)
			}
		}
	case sheet.Frames != nil:
		if err := a.addFrames(sheet.Frames, 0); err != nil {
			return nil, fmt.Errorf("movieclip: atlas: %w", err)
		}
	default:
		return nil, fmt.Errorf("movieclip: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	a.index()
	return a, nil
}

// packedSheet is the part of a TexturePacker export that clips need.
type packedSheet struct {
	Frames   json.RawMessage `json:"frames"`
	Textures []packedPage    `json:"textures"`
}

type packedPage struct {
	Image  string          `json:"image"`
	Frames json.RawMessage `json:"frames"`
}

type packedRect struct {
	X, Y, W, H int
}

type packedFrame struct {
	Filename         string     `json:"filename"`
	Frame            packedRect `json:"frame"`
	Rotated          bool       `json:"rotated"`
	SpriteSourceSize packedRect `json:"spriteSourceSize"`
	SourceSize       packedRect `json:"sourceSize"`
}

// addFrames decodes a frames value in either the hash or the list layout
// and stores its regions on page.
func (a *Atlas) addFrames(raw json.RawMessage, page uint16) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		var list []packedFrame
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("failed to parse frames: %w", err)
		}
		for i, f := range list {
			if f.Filename == "" {
				return fmt.Errorf("frame %d: missing filename", i)
			}
			if err := a.addFrame(f.Filename, f, page); err != nil {
				return err
			}
		}
		return nil
	}

	var hash map[string]packedFrame
	if err := json.Unmarshal(trimmed, &hash); err != nil {
		return fmt.Errorf("failed to parse frames: %w", err)
	}
	for name, f := range hash {
		if err := a.addFrame(name, f, page); err != nil {
			return err
		}
	}
	return nil
}

func (a *Atlas) addFrame(name string, f packedFrame, page uint16) error {
	for _, v := range [...]int{f.Frame.X, f.Frame.Y, f.Frame.W, f.Frame.H, f.SourceSize.W, f.SourceSize.H} {
		if v < 0 || v > math.MaxUint16 {
			return fmt.Errorf("region %q: size %d out of range", name, v)
		}
	}
	for _, v := range [...]int{f.SpriteSourceSize.X, f.SpriteSourceSize.Y} {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return fmt.Errorf("region %q: trim offset %d out of range", name, v)
		}
	}
	a.regions[name] = TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
	return nil
}
