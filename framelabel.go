package movieclip

// FrameLabel names a frame on a clip's timeline. Labels are created by the
// keyframe source when a clip is parsed and are never mutated afterwards.
type FrameLabel struct {
	name  string
	frame int
}

// NewFrameLabel returns a label called name that marks the given frame.
func NewFrameLabel(name string, frame int) FrameLabel {
	return FrameLabel{name: name, frame: frame}
}

// Name returns the label name.
func (l FrameLabel) Name() string {
	return l.name
}

// Frame returns the 1-based frame number the label sits on.
func (l FrameLabel) Frame() int {
	return l.frame
}

// Clone returns a copy of the label.
func (l FrameLabel) Clone() FrameLabel {
	return NewFrameLabel(l.name, l.frame)
}
