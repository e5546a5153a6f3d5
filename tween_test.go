package movieclip

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenFrameRateRamps(t *testing.T) {
	clip := newThreeFrameClip("c")
	g := TweenFrameRate(clip, 30, 1, ease.Linear)

	g.Update(0.5)
	if fps := clip.Clip.FrameRate(); math.Abs(fps-20) > 0.01 {
		t.Errorf("FrameRate halfway = %v, want ~20", fps)
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if fps := clip.Clip.FrameRate(); math.Abs(fps-30) > 0.01 {
		t.Errorf("FrameRate = %v, want ~30", fps)
	}
}

func TestTweenFrameRateKeepsFrameAndPlayback(t *testing.T) {
	s := NewScene()
	clip := newThreeFrameClip("c")
	s.Root().AddChild(clip)
	_ = clip.Clip.GotoAndPlay(Frame(2), -1)

	s.AddTween(TweenFrameRate(clip, 20, 0.5, ease.InOutQuad))
	if s.NumTweens() != 1 {
		t.Fatalf("NumTweens = %d, want 1", s.NumTweens())
	}
	// Exact halves keep float32 time from drifting short of the duration.
	s.Advance(250)
	s.Advance(250)
	if s.NumTweens() != 0 {
		t.Errorf("NumTweens = %d, want 0", s.NumTweens())
	}
	if math.Abs(clip.Clip.FrameRate()-20) > 0.01 {
		t.Errorf("FrameRate = %v, want ~20", clip.Clip.FrameRate())
	}
	if !clip.Clip.IsPlaying() || clip.Clip.IsStopped() {
		t.Error("rate changes must not stop playback")
	}
}

func TestTweenAlphaAndPosition(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = 10, 20
	pos := TweenPosition(n, 110, 220, 1, ease.Linear)
	alpha := TweenAlpha(n, 0, 1, ease.Linear)

	pos.Update(0.5)
	alpha.Update(0.5)
	if math.Abs(n.X-60) > 0.5 || math.Abs(n.Y-120) > 0.5 {
		t.Errorf("position halfway = (%v, %v)", n.X, n.Y)
	}
	if math.Abs(n.Alpha-0.5) > 0.01 {
		t.Errorf("alpha halfway = %v", n.Alpha)
	}
	if !n.transformDirty {
		t.Error("tween should mark the node dirty")
	}
	pos.Update(0.5)
	alpha.Update(0.5)
	if !pos.Done || !alpha.Done {
		t.Error("tweens should be done")
	}
}

func TestTweenGroupStopsOnDisposedNode(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, 100, 100, 1, ease.Linear)
	g.Update(0.25)
	x := n.X

	n.Dispose()
	g.Update(0.25)
	if !g.Done {
		t.Error("tween on disposed node should be done")
	}
	if n.X != x {
		t.Error("tween wrote to a disposed node")
	}
}

func TestTweenFrameRateOnDisposedClip(t *testing.T) {
	clip := newThreeFrameClip("c")
	g := TweenFrameRate(clip, 60, 1, ease.Linear)
	clip.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("tween should stop when its clip is disposed")
	}
}

func TestSceneAddTweenIgnoresDone(t *testing.T) {
	s := NewScene()
	s.AddTween(nil)
	g := TweenAlpha(NewContainer("n"), 0, 1, ease.Linear)
	g.Done = true
	s.AddTween(g)
	if s.NumTweens() != 0 {
		t.Errorf("NumTweens = %d, want 0", s.NumTweens())
	}
}
