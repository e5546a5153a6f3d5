package movieclip

import "strings"

// FrameLabels is an ordered label list. Sources keep it sorted by frame, but
// every lookup here scans the whole list and does not depend on the order.
type FrameLabels []FrameLabel

// ByName returns the first label called name. With ignoreCase the comparison
// uses Unicode case folding.
func (ls FrameLabels) ByName(name string, ignoreCase bool) (FrameLabel, bool) {
	for _, l := range ls {
		if ignoreCase {
			if strings.EqualFold(l.name, name) {
				return l, true
			}
		} else if l.name == name {
			return l, true
		}
	}
	return FrameLabel{}, false
}

// ByFrame returns the first label placed exactly on frame.
func (ls FrameLabels) ByFrame(frame int) (FrameLabel, bool) {
	for _, l := range ls {
		if l.frame == frame {
			return l, true
		}
	}
	return FrameLabel{}, false
}

// ForFrame returns the label with the greatest frame number that is <= frame.
// When several labels share that frame the first one wins.
func (ls FrameLabels) ForFrame(frame int) (FrameLabel, bool) {
	var (
		best  FrameLabel
		found bool
	)
	for _, l := range ls {
		if l.frame > frame {
			continue
		}
		if !found || l.frame > best.frame {
			best = l
			found = true
		}
	}
	return best, found
}
