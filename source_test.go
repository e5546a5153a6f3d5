package movieclip

import "testing"

func regionAt(x uint16) TextureRegion {
	return TextureRegion{X: x, Width: 8, Height: 8, OriginalW: 8, OriginalH: 8}
}

func TestClipDataExpandsDurations(t *testing.T) {
	d := NewClipData(12, []Keyframe{
		{Region: regionAt(0), Duration: 2},
		{Region: regionAt(8), Duration: 0},
		{Region: regionAt(16), Duration: 3},
	}, nil)

	if d.TotalFrames() != 6 {
		t.Fatalf("TotalFrames = %d, want 6", d.TotalFrames())
	}
	wantKeys := []int{0, 0, 1, 2, 2, 2}
	for frame, want := range wantKeys {
		if got := d.KeyframeIndex(frame + 1); got != want {
			t.Errorf("KeyframeIndex(%d) = %d, want %d", frame+1, got, want)
		}
	}
	if d.Keyframes()[1].Duration != 1 {
		t.Errorf("zero duration stored as %d, want 1", d.Keyframes()[1].Duration)
	}
	if r, ok := d.TextureForFrame(5); !ok || r.X != 16 {
		t.Errorf("TextureForFrame(5) = %+v, %v", r, ok)
	}
}

func TestClipDataOutOfRange(t *testing.T) {
	d := NewClipDataFromRegions(10, []TextureRegion{regionAt(0), regionAt(8)}, nil)
	for _, n := range []int{0, -1, 3} {
		if d.KeyframeIndex(n) != -1 {
			t.Errorf("KeyframeIndex(%d) = %d, want -1", n, d.KeyframeIndex(n))
		}
		if _, ok := d.TextureForFrame(n); ok {
			t.Errorf("TextureForFrame(%d) should fail", n)
		}
	}
}

func TestClipDataValidity(t *testing.T) {
	tests := []struct {
		name        string
		data        *ClipData
		structural  bool
		textureData bool
	}{
		{"valid", NewClipDataFromRegions(10, []TextureRegion{regionAt(0)}, nil), true, true},
		{"no frames", NewClipDataFromRegions(10, nil, nil), false, true},
		{"zero fps", NewClipDataFromRegions(0, []TextureRegion{regionAt(0)}, nil), false, true},
		{"placeholder", NewClipDataFromRegions(10, []TextureRegion{regionAt(0), magentaRegion()}, nil), true, false},
	}
	for _, tt := range tests {
		if got := tt.data.StructurallyValid(); got != tt.structural {
			t.Errorf("%s: StructurallyValid = %v, want %v", tt.name, got, tt.structural)
		}
		if got := tt.data.TextureDataValid(); got != tt.textureData {
			t.Errorf("%s: TextureDataValid = %v, want %v", tt.name, got, tt.textureData)
		}
	}
	var nilData *ClipData
	if nilData.StructurallyValid() {
		t.Error("nil ClipData should not be valid")
	}
}

func TestClipDataCopiesInputs(t *testing.T) {
	labels := []FrameLabel{NewFrameLabel("a", 1)}
	kfs := []Keyframe{{Region: regionAt(0), Duration: 1}}
	d := NewClipData(10, kfs, labels)

	labels[0] = NewFrameLabel("b", 1)
	kfs[0].Region = regionAt(99)

	if d.Labels()[0].Name() != "a" {
		t.Error("labels should be copied")
	}
	if r, _ := d.TextureForFrame(1); r.X != 0 {
		t.Error("keyframes should be copied")
	}
}

func TestClipDataSetFrameRate(t *testing.T) {
	d := NewClipDataFromRegions(10, []TextureRegion{regionAt(0)}, nil)
	d.SetFrameRate(24)
	if d.FrameRate() != 24 {
		t.Errorf("FrameRate = %v, want 24", d.FrameRate())
	}
}

func TestClipDataSharedKeyframeFetchesOnce(t *testing.T) {
	// Frames 1-3 share one key image; the timeline still fetches per frame
	// change but never for an unchanged frame.
	d := NewClipData(10, []Keyframe{{Region: regionAt(0), Duration: 3}, {Region: regionAt(8), Duration: 1}}, nil)
	tl := NewTimeline(nil)
	tl.Bind(d)
	_ = tl.GotoAndStop(Frame(3))
	if r, _ := tl.Texture(); r.X != 0 {
		t.Errorf("frame 3 region X = %d, want 0", r.X)
	}
	_ = tl.GotoAndStop(Frame(4))
	if r, _ := tl.Texture(); r.X != 8 {
		t.Errorf("frame 4 region X = %d, want 8", r.X)
	}
}
