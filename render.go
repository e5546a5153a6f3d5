package movieclip

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawCommand is a single sprite draw emitted during scene traversal.
type drawCommand struct {
	transform [6]float64
	region    TextureRegion
	color     Color
	blend     BlendMode
}

// traverse walks the node tree depth-first in ZIndex order, updating
// transforms and emitting draw commands for visible sprites and movie clips.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.Type != NodeTypeContainer && s.hasContent(n) {
		s.commands = append(s.commands, drawCommand{
			transform: n.worldTransform,
			region:    n.TextureRegion,
			color:     Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha},
			blend:     n.BlendMode,
		})
	}

	children := n.children
	if len(children) > 1 {
		if !n.childrenSorted {
			s.rebuildSortedChildren(n)
		}
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// hasContent reports whether a sprite or movie clip has something to draw.
// Sprites with a zero-value region draw as solid-color boxes; a movie clip
// draws only while its timeline has a texture.
func (s *Scene) hasContent(n *Node) bool {
	if n.Type == NodeTypeMovieClip {
		if n.Clip == nil {
			return false
		}
		_, ok := n.Clip.Texture()
		return ok
	}
	return true
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted.
func (s *Scene) rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// submit draws every queued command onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		s.submitSprite(target, &s.commands[i], &op)
	}
}

// submitSprite draws a single command using DrawImage.
func (s *Scene) submitSprite(target *ebiten.Image, cmd *drawCommand, op *ebiten.DrawImageOptions) {
	r := &cmd.region

	var img *ebiten.Image
	switch {
	case r.Width == 0 || r.Height == 0:
		img = ensureWhitePixel()
	case r.Page == magentaPlaceholderPage:
		img = ensureMagentaImage()
	case int(r.Page) < len(s.pages) && s.pages[r.Page] != nil:
		page := s.pages[r.Page]
		var subRect image.Rectangle
		if r.Rotated {
			subRect = image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Height), int(r.Y)+int(r.Width))
		} else {
			subRect = image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
		}
		img = page.SubImage(subRect).(*ebiten.Image)
	default:
		return
	}

	op.GeoM.Reset()

	// Rotated regions in atlas are stored rotated 90° CW.
	// To draw correctly: rotate -90° (CCW) then shift down by width.
	if r.Rotated {
		op.GeoM.Rotate(-1.5707963267948966)
		op.GeoM.Translate(0, float64(r.Width))
	}
	if r.OffsetX != 0 || r.OffsetY != 0 {
		op.GeoM.Translate(float64(r.OffsetX), float64(r.OffsetY))
	}
	op.GeoM.Concat(affineGeoM(cmd.transform))

	// Premultiplied color scale.
	op.ColorScale.Reset()
	a := float32(cmd.color.A)
	op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)
	op.Blend = cmd.blend.EbitenBlend()

	target.DrawImage(img, op)
}

// affineGeoM converts a [6]float64 affine matrix into an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// --- White pixel singleton (no sync.Once: single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// for solid-color sprites.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(ColorWhite.toRGBA())
	}
	return whitePixelImage
}
