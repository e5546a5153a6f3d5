package movieclip

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a playback script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Clip   string  `yaml:"clip,omitempty"`
	Name   string  `yaml:"name,omitempty"`
	Frame  string  `yaml:"frame,omitempty"`
	Times  int     `yaml:"times,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	FPS    float64 `yaml:"fps,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// PlaybackScript sequences transport actions on named movie clips across
// scene updates, for demos and automated visual checks. Scripts are YAML
// (or JSON, which YAML accepts):
//
//	steps:
//	  - {action: gotoAndPlay, clip: hero, frame: walk, times: -1}
//	  - {action: wait, frames: 30}
//	  - {action: rate, clip: hero, fps: 24}
//	  - {action: gotoAndStop, clip: hero, frame: "3"}
//	  - {action: waitStopped, clip: hero}
//	  - {action: capture, name: hero-done}
//
// Attach with Scene.SetPlaybackScript. Each update executes one step.
type PlaybackScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitClip  *Node
	done      bool
	err       error
}

// LoadPlaybackScript parses a playback script.
func LoadPlaybackScript(data []byte) (*PlaybackScript, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse playback script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse playback script: no steps")
	}
	for i, st := range f.Steps {
		if err := validateStep(st); err != nil {
			return nil, fmt.Errorf("parse playback script: step %d: %w", i, err)
		}
	}
	return &PlaybackScript{steps: f.Steps}, nil
}

func validateStep(st scriptStep) error {
	switch st.Action {
	case "wait":
		return nil
	case "capture":
		if st.Name == "" {
			return fmt.Errorf("capture: missing name")
		}
		return nil
	case "play", "stop", "waitStopped", "rate":
	case "gotoAndPlay", "gotoAndStop", "seek":
		if _, err := ParseFrameTarget(st.Frame); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if st.Clip == "" {
		return fmt.Errorf("%s: missing clip", st.Action)
	}
	return nil
}

// Done reports whether all steps have run or a step failed.
func (p *PlaybackScript) Done() bool {
	return p.done
}

// Err returns the error that ended the script early, if any.
func (p *PlaybackScript) Err() error {
	return p.err
}

// step advances the script by one update.
func (p *PlaybackScript) step(s *Scene) {
	if p.done {
		return
	}
	if p.waitClip != nil {
		if p.waitClip.Clip != nil && !p.waitClip.Clip.IsStopped() {
			return
		}
		p.waitClip = nil
	}
	if p.waitCount > 0 {
		p.waitCount--
		return
	}
	if p.cursor >= len(p.steps) {
		p.done = true
		return
	}

	st := p.steps[p.cursor]
	p.cursor++

	if err := p.exec(s, st); err != nil {
		p.err = fmt.Errorf("playback step %d (%s): %w", p.cursor-1, st.Action, err)
		p.done = true
		if globalDebug {
			log.Printf("movieclip: %v", p.err)
		}
		return
	}

	if p.cursor >= len(p.steps) && p.waitCount == 0 && p.waitClip == nil {
		p.done = true
	}
}

func (p *PlaybackScript) exec(s *Scene, st scriptStep) error {
	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			p.waitCount = st.Frames - 1 // this update counts as one
		}
		return nil
	case "capture":
		s.Capture(st.Name)
		return nil
	}

	node := s.root.ChildByName(st.Clip)
	if node == nil || node.Clip == nil {
		return fmt.Errorf("no movie clip named %q", st.Clip)
	}
	clip := node.Clip

	switch st.Action {
	case "play":
		return clip.Play(st.Times)
	case "stop":
		clip.Stop()
	case "rate":
		clip.SetFrameRate(st.FPS)
	case "waitStopped":
		p.waitClip = node
	case "gotoAndPlay", "gotoAndStop", "seek":
		target, err := ParseFrameTarget(st.Frame)
		if err != nil {
			return err
		}
		switch st.Action {
		case "gotoAndPlay":
			return clip.GotoAndPlay(target, st.Times)
		case "gotoAndStop":
			return clip.GotoAndStop(target)
		default:
			return clip.Seek(target)
		}
	}
	return nil
}
