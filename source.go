package movieclip

// KeyframeSource supplies the frame data a Timeline plays. Sources are owned
// by the caller; a Timeline only reads from them, except for SetFrameRate.
type KeyframeSource interface {
	// StructurallyValid reports whether the source has frames and a usable rate.
	StructurallyValid() bool
	// TextureDataValid reports whether every frame resolves to a texture.
	TextureDataValid() bool
	TotalFrames() int
	FrameRate() float64
	SetFrameRate(fps float64)
	// Labels returns the label list ordered by frame number.
	Labels() []FrameLabel
	// TextureForFrame returns the region shown on 1-based frame n.
	TextureForFrame(n int) (TextureRegion, bool)
}

// Keyframe is one key image on a clip. A keyframe with Duration > 1 is
// displayed on that many consecutive frames.
type Keyframe struct {
	Region   TextureRegion
	Duration int
}

// ClipData is the standard KeyframeSource: a list of keyframes at a uniform
// frame rate, plus frame labels.
type ClipData struct {
	fps       float64
	keyframes []Keyframe
	labels    []FrameLabel

	// frameKeys[i] is the keyframe index shown on frame i+1.
	frameKeys []int
}

// NewClipData builds clip data from keyframes. Durations below 1 count as 1.
func NewClipData(fps float64, keyframes []Keyframe, labels []FrameLabel) *ClipData {
	d := &ClipData{
		fps:       fps,
		keyframes: make([]Keyframe, len(keyframes)),
		labels:    make([]FrameLabel, len(labels)),
	}
	copy(d.labels, labels)
	for i, kf := range keyframes {
		if kf.Duration < 1 {
			kf.Duration = 1
		}
		d.keyframes[i] = kf
		for j := 0; j < kf.Duration; j++ {
			d.frameKeys = append(d.frameKeys, i)
		}
	}
	return d
}

// NewClipDataFromRegions builds clip data with one frame per region.
func NewClipDataFromRegions(fps float64, regions []TextureRegion, labels []FrameLabel) *ClipData {
	kfs := make([]Keyframe, len(regions))
	for i, r := range regions {
		kfs[i] = Keyframe{Region: r, Duration: 1}
	}
	return NewClipData(fps, kfs, labels)
}

func (d *ClipData) StructurallyValid() bool {
	return d != nil && len(d.frameKeys) > 0 && d.fps > 0
}

// TextureDataValid reports false when any keyframe uses the missing-region
// placeholder returned by Atlas.Region.
func (d *ClipData) TextureDataValid() bool {
	for _, kf := range d.keyframes {
		if kf.Region.Page == magentaPlaceholderPage {
			return false
		}
	}
	return true
}

func (d *ClipData) TotalFrames() int {
	return len(d.frameKeys)
}

func (d *ClipData) FrameRate() float64 {
	return d.fps
}

func (d *ClipData) SetFrameRate(fps float64) {
	d.fps = fps
}

func (d *ClipData) Labels() []FrameLabel {
	return d.labels
}

// Keyframes returns the keyframe list. The returned slice MUST NOT be mutated.
func (d *ClipData) Keyframes() []Keyframe {
	return d.keyframes
}

// KeyframeIndex returns the index of the keyframe displayed on frame n, or -1
// when n is out of range.
func (d *ClipData) KeyframeIndex(n int) int {
	if n < 1 || n > len(d.frameKeys) {
		return -1
	}
	return d.frameKeys[n-1]
}

func (d *ClipData) TextureForFrame(n int) (TextureRegion, bool) {
	i := d.KeyframeIndex(n)
	if i < 0 {
		return TextureRegion{}, false
	}
	return d.keyframes[i].Region, true
}
