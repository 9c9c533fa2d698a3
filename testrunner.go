package guish

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button string  `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
	Dir    string  `json:"dir,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events across frames for automated
// interaction testing. Attach to a Scene via SetTestRunner.
//
// Script actions:
//
//	{"action": "move",    "x": 320, "y": 240}
//	{"action": "press",   "x": 320, "y": 240, "button": "left"}
//	{"action": "release", "x": 320, "y": 240, "button": "left"}
//	{"action": "click",   "x": 320, "y": 240}
//	{"action": "key",     "key": "A", "shift": true}
//	{"action": "scroll",  "dir": "up"}
//	{"action": "wait",    "frames": 10}
//
// button defaults to "left"; key uses ebiten key names.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses and validates a JSON test script and returns a
// TestRunner ready to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := validateStep(st); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func validateStep(st testStep) error {
	switch st.Action {
	case "move", "wait":
		return nil
	case "press", "release", "click":
		_, err := parseButton(st.Button)
		return err
	case "key":
		if _, ok := keyByName(st.Key); !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	case "scroll":
		_, err := parseScroll(st.Dir)
		return err
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

func parseButton(name string) (MouseButton, error) {
	if name == "" {
		return MouseButtonLeft, nil
	}
	for b := MouseButtonLeft; b < mouseButtonCount; b++ {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

func parseScroll(dir string) (ScrollDirection, error) {
	switch dir {
	case "up":
		return ScrollUp, nil
	case "down":
		return ScrollDown, nil
	case "left":
		return ScrollLeft, nil
	case "right":
		return ScrollRight, nil
	}
	return ScrollNone, fmt.Errorf("unknown scroll direction %q", dir)
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step
// method is called from Scene.Update before input is collected each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	// Steps were validated at load time.
	button, _ := parseButton(st.Button)
	switch st.Action {
	case "move":
		s.InjectMove(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y, button)
	case "release":
		s.InjectRelease(st.X, st.Y, button)
	case "click":
		s.InjectClick(st.X, st.Y, button)
	case "key":
		key, _ := keyByName(st.Key)
		var mods KeyModifiers
		if st.Shift {
			mods = ModShift
		}
		s.InjectKey(key, mods)
	case "scroll":
		dir, _ := parseScroll(st.Dir)
		s.InjectScroll(dir)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
