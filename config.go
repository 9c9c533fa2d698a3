package guish

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RunConfig holds window and dispatch settings for Run. It can be written
// by hand or loaded from TOML:
//
//	title = "Focus policies"
//	width = 800
//	height = 600
//	show_fps = true
//	ignore_back_faces = true
//	keyboard_focus_policy = "mouse-over"
//	wheel_focus_policy = "mouse-down"
//	double_click_interval = 0.25
type RunConfig struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	ShowFPS bool   `toml:"show_fps"`
	// Debug turns debug mode on. A false value leaves the scene's mode alone.
	Debug   bool   `toml:"debug"`

	IgnoreBackFaces     bool    `toml:"ignore_back_faces"`
	KeyboardFocusPolicy string  `toml:"keyboard_focus_policy"`
	WheelFocusPolicy    string  `toml:"wheel_focus_policy"`
	DoubleClickInterval float64 `toml:"double_click_interval"`
}

// DefaultRunConfig returns the settings Run uses for zero fields.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:               "guish",
		Width:               640,
		Height:              480,
		KeyboardFocusPolicy: FocusPolicyManual,
		WheelFocusPolicy:    FocusPolicyManual,
		DoubleClickInterval: DefaultDoubleClickInterval,
	}
}

// LoadRunConfig parses TOML over DefaultRunConfig and validates the result.
func LoadRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	return cfg, nil
}

// LoadRunConfigFile reads and parses a TOML config file.
func LoadRunConfigFile(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, err
	}
	return LoadRunConfig(data)
}

func (c RunConfig) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("window size %dx%d is negative", c.Width, c.Height)
	}
	if c.DoubleClickInterval < 0 {
		return fmt.Errorf("double_click_interval %v is negative", c.DoubleClickInterval)
	}
	if _, err := FocusPolicyByName(c.KeyboardFocusPolicy); err != nil {
		return err
	}
	if _, err := FocusPolicyByName(c.WheelFocusPolicy); err != nil {
		return err
	}
	return nil
}

// withDefaults fills zero-valued fields from DefaultRunConfig.
func (c RunConfig) withDefaults() RunConfig {
	def := DefaultRunConfig()
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.DoubleClickInterval == 0 {
		c.DoubleClickInterval = def.DoubleClickInterval
	}
	return c
}

// Apply pushes the dispatch and display settings onto scene. The camera
// viewport is resized to the window.
func (c RunConfig) Apply(scene *Scene) error {
	if err := c.validate(); err != nil {
		return err
	}
	c = c.withDefaults()

	d := scene.Dispatcher()
	kbd, _ := FocusPolicyByName(c.KeyboardFocusPolicy)
	wheel, _ := FocusPolicyByName(c.WheelFocusPolicy)
	d.SetKeyboardFocusPolicy(kbd)
	d.SetMouseWheelFocusPolicy(wheel)
	d.SetIgnoreBackFaces(c.IgnoreBackFaces)
	d.doubleClickInterval = c.DoubleClickInterval

	scene.Camera().Viewport = Rect{Width: float64(c.Width), Height: float64(c.Height)}
	scene.HUD().ShowFPS = c.ShowFPS
	if c.Debug {
		scene.SetDebugMode(true)
	}
	return nil
}
