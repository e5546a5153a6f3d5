package movieclip

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 properties simultaneously. Create one
// via the convenience constructors (TweenFrameRate, TweenAlpha,
// TweenPosition) and either call Update(dt) yourself or hand it to
// Scene.AddTween. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens  [2]*gween.Tween
	setters [2]func(float64)
	count   int
	target  *Node
	Done    bool
}

// Update advances all tweens by dt seconds and applies the values. If the
// target node has been disposed, Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.setters[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenFrameRate ramps a movie clip's frame rate to fps over duration
// seconds. The clip keeps its current frame while the rate changes.
func TweenFrameRate(clip *Node, fps float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: clip}
	from := 0.0
	if clip.Clip != nil {
		from = clip.Clip.FrameRate()
	}
	g.tweens[0] = gween.New(float32(from), float32(fps), duration, fn)
	g.setters[0] = func(v float64) {
		if clip.Clip != nil {
			clip.Clip.SetFrameRate(v)
		}
	}
	return g
}

// TweenAlpha animates node.Alpha to the target value over the specified
// duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.setters[0] = func(v float64) { node.Alpha = v }
	return g
}

// TweenPosition animates node.X and node.Y to the given target coordinates
// over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.setters[0] = func(v float64) { node.X = v }
	g.setters[1] = func(v float64) { node.Y = v }
	return g
}

// AddTween runs g on every Update until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of running scene tweens.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}
