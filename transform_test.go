package movieclip

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  [6]float64
	}{
		{"identity", func(n *Node) {}, identityTransform},
		{"translate", func(n *Node) { n.X, n.Y = 5, -3 }, [6]float64{1, 0, 0, 1, 5, -3}},
		{"scale", func(n *Node) { n.ScaleX, n.ScaleY = 2, 3 }, [6]float64{2, 0, 0, 3, 0, 0}},
		{"rotate 90", func(n *Node) { n.Rotation = math.Pi / 2 }, [6]float64{0, 1, -1, 0, 0, 0}},
		{"pivot", func(n *Node) { n.PivotX, n.PivotY = 16, 16 }, [6]float64{1, 0, 0, 1, -16, -16}},
		{"pivot scaled", func(n *Node) {
			n.PivotX, n.PivotY = 16, 8
			n.ScaleX, n.ScaleY = 2, 2
			n.X, n.Y = 100, 50
		}, [6]float64{2, 0, 0, 2, 68, 34}},
	}
	for _, tt := range tests {
		n := NewContainer("n")
		tt.setup(n)
		assertMatrix(t, tt.name, computeLocalTransform(n), tt.want)
	}
}

func TestMultiplyAffine(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{2, 0, 0, 2, 3, 4}
	assertMatrix(t, "identity*a", multiplyAffine(identityTransform, a), a)
	// b applied first, then a.
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{2, 0, 0, 2, 13, 24})
}

func TestWorldTransformAndAlpha(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.SetPosition(100, 0)
	parent.SetAlpha(0.5)
	child.SetPosition(10, 5)
	child.SetAlpha(0.5)

	updateWorldTransform(parent, identityTransform, 1, false)

	assertNear(t, "child.tx", child.worldTransform[4], 110)
	assertNear(t, "child.ty", child.worldTransform[5], 5)
	assertNear(t, "child.worldAlpha", child.worldAlpha, 0.25)

	x, y := child.LocalToWorld(1, 1)
	assertNear(t, "LocalToWorld.x", x, 111)
	assertNear(t, "LocalToWorld.y", y, 6)
}

func TestDirtyFlag(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.SetPosition(10, 0)
	updateWorldTransform(parent, identityTransform, 1, false)

	// Writing the field directly leaves the node clean.
	child.X = 999
	updateWorldTransform(parent, identityTransform, 1, false)
	assertNear(t, "stale tx", child.worldTransform[4], 10)

	child.MarkDirty()
	updateWorldTransform(parent, identityTransform, 1, false)
	assertNear(t, "fresh tx", child.worldTransform[4], 999)

	// A dirty parent recomputes clean children.
	parent.SetPosition(1, 0)
	updateWorldTransform(parent, identityTransform, 1, false)
	assertNear(t, "propagated tx", child.worldTransform[4], 1000)
}

func TestSettersMarkDirty(t *testing.T) {
	setters := map[string]func(n *Node){
		"SetPosition": func(n *Node) { n.SetPosition(1, 2) },
		"SetScale":    func(n *Node) { n.SetScale(2, 2) },
		"SetRotation": func(n *Node) { n.SetRotation(1) },
		"SetPivot":    func(n *Node) { n.SetPivot(3, 3) },
		"SetAlpha":    func(n *Node) { n.SetAlpha(0.2) },
	}
	for name, set := range setters {
		n := NewContainer("n")
		n.transformDirty = false
		set(n)
		if !n.transformDirty {
			t.Errorf("%s did not mark the node dirty", name)
		}
	}
}

func TestWorldBoundsFollowsClipFrame(t *testing.T) {
	regions := []TextureRegion{
		{Width: 10, Height: 10},
		{Width: 20, Height: 30, OriginalW: 40, OriginalH: 40, OffsetX: 5, OffsetY: 2},
	}
	clip := NewMovieClip("clip", NewClipDataFromRegions(10, regions, nil))
	clip.SetPosition(100, 100)
	clip.SetScale(2, 2)
	updateWorldTransform(clip, identityTransform, 1, false)

	b := clip.WorldBounds()
	if b != (Rect{X: 100, Y: 100, Width: 20, Height: 20}) {
		t.Errorf("frame 1 WorldBounds = %+v", b)
	}

	_ = clip.Clip.GotoAndStop(Frame(2))
	b = clip.WorldBounds()
	if b != (Rect{X: 110, Y: 104, Width: 80, Height: 80}) {
		t.Errorf("frame 2 WorldBounds = %+v", b)
	}
}
