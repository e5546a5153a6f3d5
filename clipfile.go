package movieclip

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClipFile is the YAML description of a movie clip:
//
//	fps: 12
//	frames:
//	  - region: walk_0.png
//	    duration: 2
//	  - region: walk_1.png
//	labels:
//	  - {name: walk, frame: 1}
//
// Regions are looked up in an atlas when the file is built. A sequence key
// may replace the frame list: every atlas region starting with the prefix
// becomes one frame, in numeric order.
type ClipFile struct {
	FPS      float64         `yaml:"fps"`
	Sequence string          `yaml:"sequence,omitempty"`
	Frames   []ClipFileFrame `yaml:"frames,omitempty"`
	Labels   []ClipFileLabel `yaml:"labels,omitempty"`
}

// ClipFileFrame is one keyframe entry. Duration defaults to 1.
type ClipFileFrame struct {
	Region   string `yaml:"region"`
	Duration int    `yaml:"duration,omitempty"`
}

// ClipFileLabel is one frame label entry.
type ClipFileLabel struct {
	Name  string `yaml:"name"`
	Frame int    `yaml:"frame"`
}

// LoadClipFile reads and validates a YAML clip file.
func LoadClipFile(path string) (*ClipFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("movieclip: failed to read clip file: %w", err)
	}
	cf, err := ParseClipFile(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return cf, nil
}

// ParseClipFile parses and validates YAML clip data.
func ParseClipFile(data []byte) (*ClipFile, error) {
	var cf ClipFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("movieclip: failed to parse clip file: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("movieclip: invalid clip file: %w", err)
	}
	return &cf, nil
}

// Validate checks the rate, frames and labels. Label frames are only checked
// to be positive here; frame counts of sequence clips depend on the atlas.
func (cf *ClipFile) Validate() error {
	if cf.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", cf.FPS)
	}
	if cf.Sequence == "" && len(cf.Frames) == 0 {
		return fmt.Errorf("no frames and no sequence")
	}
	if cf.Sequence != "" && len(cf.Frames) > 0 {
		return fmt.Errorf("frames and sequence are mutually exclusive")
	}
	for i, f := range cf.Frames {
		if f.Region == "" {
			return fmt.Errorf("frame %d: missing region", i)
		}
		if f.Duration < 0 {
			return fmt.Errorf("frame %d: negative duration %d", i, f.Duration)
		}
	}
	total := cf.frameCount()
	for _, l := range cf.Labels {
		if l.Name == "" {
			return fmt.Errorf("label at frame %d: missing name", l.Frame)
		}
		if l.Frame < 1 {
			return fmt.Errorf("label %q: frame must be >= 1, got %d", l.Name, l.Frame)
		}
		if total > 0 && l.Frame > total {
			return fmt.Errorf("label %q: frame %d past last frame %d", l.Name, l.Frame, total)
		}
	}
	return nil
}

// frameCount returns the number of frames described by an explicit frame
// list, or 0 for sequence clips.
func (cf *ClipFile) frameCount() int {
	n := 0
	for _, f := range cf.Frames {
		d := f.Duration
		if d < 1 {
			d = 1
		}
		n += d
	}
	return n
}

// Build resolves the file's regions against atlas. Missing regions resolve
// to the placeholder, which makes the clip's texture data invalid.
func (cf *ClipFile) Build(atlas *Atlas) *ClipData {
	labels := make([]FrameLabel, len(cf.Labels))
	for i, l := range cf.Labels {
		labels[i] = NewFrameLabel(l.Name, l.Frame)
	}
	if cf.Sequence != "" {
		return NewClipDataFromRegions(cf.FPS, atlas.Sequence(cf.Sequence), labels)
	}
	kfs := make([]Keyframe, len(cf.Frames))
	for i, f := range cf.Frames {
		kfs[i] = Keyframe{Region: atlas.Region(f.Region), Duration: f.Duration}
	}
	return NewClipData(cf.FPS, kfs, labels)
}
