package movieclip

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLog prints draw timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[movieclip] traverse: %v | submit: %v | total: %v | commands: %d\n",
		stats.traverseTime, stats.submitTime, stats.traverseTime+stats.submitTime, stats.commandCount)
}

// debugLogUpdate prints update timing and the number of ticking clips.
func (s *Scene) debugLogUpdate(elapsed time.Duration, ticking int) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[movieclip] update: %v | ticking clips: %d\n", elapsed, ticking)
}

// statsText is the overlay drawn when Scene.ShowStats is set.
func statsText(fps, tps float64, ticking int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nclips: %d", fps, tps, ticking)
}

// drawStats prints frame rates and the ticking clip count in the top-left
// corner over a translucent backdrop.
func (s *Scene) drawStats(screen *ebiten.Image) {
	if s.statsImage == nil {
		s.statsImage = ebiten.NewImage(96, 48)
	}
	s.statsImage.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(s.statsImage, statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), s.ticker.Len()))
	screen.DrawImage(s.statsImage, nil)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("movieclip debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[movieclip] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[movieclip] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
