package movieclip

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type targetKind uint8

const (
	targetFrame targetKind = iota
	targetLabel
)

// FrameTarget is a seek destination: either an absolute frame number or a
// label name. Build one with Frame, Label, FrameNumber or ParseFrameTarget.
type FrameTarget struct {
	kind  targetKind
	frame int
	label string
}

// Frame targets an absolute 1-based frame number. Out-of-range numbers are
// clamped when the seek happens.
func Frame(n int) FrameTarget {
	return FrameTarget{kind: targetFrame, frame: n}
}

// Label targets the frame of the named label.
func Label(name string) FrameTarget {
	return FrameTarget{kind: targetLabel, label: name}
}

// FrameNumber converts a float frame number to a target. Non-integer values
// fail with ErrInvalidTarget.
func FrameNumber(f float64) (FrameTarget, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return FrameTarget{}, fmt.Errorf("frame %v: %w", f, ErrInvalidTarget)
	}
	return Frame(int(f)), nil
}

// ParseFrameTarget reads a frame token as used by playback scripts. Integer
// tokens are frame numbers, numeric tokens with a fraction are rejected, and
// everything else is treated as a label name.
func ParseFrameTarget(token string) (FrameTarget, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return FrameTarget{}, fmt.Errorf("empty frame token: %w", ErrInvalidTarget)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Frame(n), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FrameNumber(f)
	}
	return Label(token), nil
}

// IsLabel reports whether the target names a label.
func (t FrameTarget) IsLabel() bool {
	return t.kind == targetLabel
}

// String returns the frame number or the quoted label name.
func (t FrameTarget) String() string {
	if t.kind == targetLabel {
		return strconv.Quote(t.label)
	}
	return strconv.Itoa(t.frame)
}

// resolve maps the target to a frame number using labels.
func (t FrameTarget) resolve(labels FrameLabels) (int, error) {
	if t.kind == targetFrame {
		return t.frame, nil
	}
	l, ok := labels.ByName(t.label, false)
	if !ok {
		return 0, fmt.Errorf("label %q not found: %w", t.label, ErrInvalidTarget)
	}
	return l.frame, nil
}
