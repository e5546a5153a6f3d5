package movieclip

import "testing"

// --- Constructor defaults ---

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %v, want %v", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 || n.Color != ColorWhite {
		t.Errorf("Alpha = %v Color = %v, want 1 and white", n.Alpha, n.Color)
	}
	if !n.Visible || !n.Renderable {
		t.Error("nodes should start visible and renderable")
	}
	if n.OnStage() {
		t.Error("new nodes should be off stage")
	}
}

func TestNodeConstructors(t *testing.T) {
	assertNodeDefaults(t, NewContainer("c"), "c", NodeTypeContainer)

	region := TextureRegion{Width: 32, Height: 32}
	spr := NewSprite("s", region)
	assertNodeDefaults(t, spr, "s", NodeTypeSprite)
	if spr.TextureRegion != region {
		t.Errorf("TextureRegion = %v, want %v", spr.TextureRegion, region)
	}

	mc := NewMovieClip("m", NewClipDataFromRegions(10, []TextureRegion{region, region}, nil))
	assertNodeDefaults(t, mc, "m", NodeTypeMovieClip)
	if mc.Clip == nil || mc.Clip.CurrentFrame() != 1 {
		t.Fatal("movie clip should show frame 1")
	}
	if mc.TextureRegion != region {
		t.Errorf("clip TextureRegion = %v, want %v", mc.TextureRegion, region)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		n := NewContainer("")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

// --- Tree manipulation ---

func TestAddChildAndReparent(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")

	a.AddChild(child)
	if child.Parent != a || a.NumChildren() != 1 {
		t.Fatal("child not added to a")
	}
	b.AddChild(child)
	if child.Parent != b || a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Error("reparenting should remove the child from its old parent")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := map[string]func(){
		"nil": func() { NewContainer("p").AddChild(nil) },
		"self": func() {
			n := NewContainer("n")
			n.AddChild(n)
		},
		"cycle": func() {
			a, b := NewContainer("a"), NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		},
		"wrong parent": func() {
			a, b := NewContainer("a"), NewContainer("b")
			a.RemoveChild(b)
		},
	}
	for name, fn := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	kids := []*Node{NewContainer("1"), NewContainer("2"), NewContainer("3")}
	for _, k := range kids {
		p.AddChild(k)
	}
	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil || k.IsDisposed() {
			t.Errorf("child %q should be detached but not disposed", k.Name)
		}
	}
	p.RemoveFromParent()
}

func TestChildByNameDepthFirst(t *testing.T) {
	root := NewContainer("root")
	arm := NewContainer("arm")
	hand := NewContainer("hand")
	root.AddChild(arm)
	arm.AddChild(hand)
	root.AddChild(NewContainer("hand"))

	if got := root.ChildByName("hand"); got != hand {
		t.Error("ChildByName should return the first match depth-first")
	}
	if root.ChildByName("leg") != nil {
		t.Error("ChildByName should return nil when nothing matches")
	}
}

func TestSetZIndexMarksParentUnsorted(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.childrenSorted = true
	c.SetZIndex(0)
	if !p.childrenSorted {
		t.Error("unchanged ZIndex should not unsort")
	}
	c.SetZIndex(3)
	if p.childrenSorted {
		t.Error("SetZIndex should unsort the parent")
	}
}

// --- Stage propagation ---

func newThreeFrameClip(name string) *Node {
	r := TextureRegion{Width: 8, Height: 8}
	return NewMovieClip(name, NewClipDataFromRegions(10, []TextureRegion{r, r, r}, nil))
}

func TestStagePropagatesThroughSubtree(t *testing.T) {
	scene := NewScene()
	group := NewContainer("group")
	clip := newThreeFrameClip("clip")
	group.AddChild(clip)

	if clip.OnStage() || clip.Clip.IsAttached() {
		t.Fatal("clip under a detached group should be off stage")
	}
	scene.Root().AddChild(group)
	if clip.Scene() != scene || !clip.Clip.IsAttached() {
		t.Fatal("adding the group to the scene should attach the clip")
	}
	group.RemoveFromParent()
	if clip.OnStage() || clip.Clip.IsAttached() {
		t.Fatal("removing the group should detach the clip")
	}
}

func TestRemovingPlayingClipPausesIt(t *testing.T) {
	scene := NewScene()
	clip := newThreeFrameClip("clip")
	scene.Root().AddChild(clip)
	_ = clip.Clip.Play(-1)
	if scene.Ticker().Len() != 1 {
		t.Fatalf("ticker Len = %d, want 1", scene.Ticker().Len())
	}

	scene.Advance(100)
	clip.RemoveFromParent()
	if scene.Ticker().Len() != 0 {
		t.Fatal("detached clip should leave the ticker")
	}
	scene.Advance(1000)
	if clip.Clip.CurrentFrame() != 2 {
		t.Errorf("detached clip advanced to %d", clip.Clip.CurrentFrame())
	}

	scene.Root().AddChild(clip)
	if scene.Ticker().Len() != 1 || !clip.Clip.IsPlaying() {
		t.Fatal("re-added clip should resume without Play")
	}
	scene.Advance(100)
	if clip.Clip.CurrentFrame() != 3 {
		t.Errorf("CurrentFrame = %d, want 3", clip.Clip.CurrentFrame())
	}
}

func TestMovingClipBetweenScenes(t *testing.T) {
	s1, s2 := NewScene(), NewScene()
	clip := newThreeFrameClip("clip")
	s1.Root().AddChild(clip)
	_ = clip.Clip.Play(-1)

	s2.Root().AddChild(clip)
	if s1.Ticker().Len() != 0 || s2.Ticker().Len() != 1 {
		t.Errorf("ticker lens = %d, %d; want 0, 1", s1.Ticker().Len(), s2.Ticker().Len())
	}
}

// --- Bounds ---

func TestContentBounds(t *testing.T) {
	if b := NewContainer("c").ContentBounds(); !b.IsEmpty() {
		t.Errorf("container bounds = %+v, want empty", b)
	}
	spr := NewSprite("s", TextureRegion{Width: 20, Height: 18, OriginalW: 24, OriginalH: 24, OffsetX: 2, OffsetY: 3})
	if b := spr.ContentBounds(); b != (Rect{X: 2, Y: 3, Width: 24, Height: 24}) {
		t.Errorf("sprite bounds = %+v", b)
	}
	spr.TextureRegion = TextureRegion{Width: 5, Height: 6}
	if b := spr.ContentBounds(); b.Width != 24 {
		t.Error("bounds should stay cached until invalidated")
	}
	spr.InvalidateContentBounds()
	if b := spr.ContentBounds(); b != (Rect{Width: 5, Height: 6}) {
		t.Errorf("invalidated bounds = %+v", b)
	}
}

func TestMovieClipBoundsInvalidatedPerFrame(t *testing.T) {
	regions := []TextureRegion{{Width: 4, Height: 4}, {Width: 12, Height: 6}}
	clip := NewMovieClip("m", NewClipDataFromRegions(10, regions, nil))
	if b := clip.ContentBounds(); b.Width != 4 {
		t.Fatalf("frame 1 bounds = %+v", b)
	}
	_ = clip.Clip.NextFrame()
	if b := clip.ContentBounds(); b.Width != 12 || b.Height != 6 {
		t.Errorf("frame 2 bounds = %+v", b)
	}
	clip.SetClipSource(nil)
	if b := clip.ContentBounds(); !b.IsEmpty() {
		t.Errorf("unbound clip bounds = %+v, want empty", b)
	}
	if clip.TextureRegion != (TextureRegion{}) {
		t.Error("unbinding should clear the node's region")
	}
}

// --- Disposal ---

func TestDisposeSubtree(t *testing.T) {
	scene := NewScene()
	group := NewContainer("group")
	clip := newThreeFrameClip("clip")
	group.AddChild(clip)
	scene.Root().AddChild(group)
	_ = clip.Clip.Play(-1)

	group.Dispose()
	if !group.IsDisposed() || !clip.IsDisposed() {
		t.Error("Dispose should dispose the subtree")
	}
	if clip.Clip != nil {
		t.Error("disposed clip should drop its timeline")
	}
	if scene.Ticker().Len() != 0 {
		t.Error("disposed clip should leave the ticker")
	}
	if scene.Root().NumChildren() != 0 {
		t.Error("disposed node should be removed from its parent")
	}
	group.Dispose()
}

func TestSetClipSourceIgnoredForSprites(t *testing.T) {
	spr := NewSprite("s", TextureRegion{})
	spr.SetClipSource(NewClipDataFromRegions(10, []TextureRegion{{}}, nil))
	if spr.Clip != nil {
		t.Error("sprites have no timeline")
	}
}
