package movieclip

import (
	"testing"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"walk-03", "walk-03"},
		{"hero.loop", "hero.loop"},
		{"after goto", "after_goto"},
		{"../escape", ".._escape"},
		{`a\b`, "a_b"},
		{"", "capture"},
		{"  ", "capture"},
	}
	for _, tt := range tests {
		if got := safeFileName(tt.in); got != tt.want {
			t.Errorf("safeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // clear
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], b)
		}
	}
	if pixels[0] != 128 {
		t.Error("input pixels were modified")
	}
}

func TestCaptureQueue(t *testing.T) {
	s := NewScene()
	if s.CaptureDir != "captures" {
		t.Errorf("CaptureDir = %q, want captures", s.CaptureDir)
	}
	s.Capture("start")
	s.Capture("mid frame")
	if len(s.captures) != 2 || s.captures[1] != "mid_frame" {
		t.Errorf("captures = %v", s.captures)
	}
}
