package engine2d

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// playbackStep represents a single action in a playback script.
type playbackStep struct {
	Action string `yaml:"action"`
	Key    string `yaml:"key,omitempty"`
	Label  string `yaml:"label,omitempty"`
	Frames int    `yaml:"frames,omitempty"`

	key ebiten.Key
}

// playbackScript is the top-level structure of a playback script.
type playbackScript struct {
	Steps []playbackStep `yaml:"steps"`
}

// Playback feeds scripted key transitions and screenshot requests into the
// engine, one step per frame, for automated runs. Attach it with
// Engine.SetPlayback.
//
// Actions: press and release change a key's state; tap presses a key and
// releases it on the following frame; wait idles for Frames frames;
// screenshot queues a screenshot named Label.
type Playback struct {
	steps     []playbackStep
	cursor    int
	waitCount int
	release   []ebiten.Key
	done      bool
}

// LoadPlayback parses a YAML or JSON playback script.
func LoadPlayback(data []byte) (*Playback, error) {
	var script playbackScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse playback script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse playback script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("parse playback script: step %d: unknown key %q", i, st.Key)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse playback script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Playback{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (p *Playback) Done() bool {
	return p.done
}

// step advances the playback by one frame. Called once per frame after real
// input has been polled.
func (p *Playback) step(in *InputState, screenshot func(label string)) {
	for _, k := range p.release {
		in.SetKey(k, false)
	}
	p.release = p.release[:0]

	if p.done {
		return
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

	switch st.Action {
	case "press":
		in.SetKey(st.key, true)
	case "release":
		in.SetKey(st.key, false)
	case "tap":
		in.SetKey(st.key, true)
		p.release = append(p.release, st.key)
	case "wait":
		if st.Frames > 0 {
			p.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if screenshot != nil {
			screenshot(st.Label)
		}
	}

	if p.cursor >= len(p.steps) && p.waitCount == 0 && len(p.release) == 0 {
		p.done = true
	}
}
