package cadview

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the viewer configuration file.
//
//	[window]
//	title = "cadview"
//	width = 1024
//	height = 768
//
//	[view]
//	clear_color = [0.2, 0.2, 1.0]
//	show_hud = true
//	focus_duration = 0.35
//	camera_file = "camera.json"
type Config struct {
	Window        WindowConfig `toml:"window"`
	View          ViewConfig   `toml:"view"`
	Debug         bool         `toml:"debug"`
	ScreenshotDir string       `toml:"screenshot_dir"`
}

// WindowConfig holds window options.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	TPS    int    `toml:"tps"`
}

// ViewConfig holds rendering and camera options.
type ViewConfig struct {
	// ClearColor is RGB or RGBA in [0, 1].
	ClearColor    []float64 `toml:"clear_color"`
	ShowHUD       bool      `toml:"show_hud"`
	FocusDuration float64   `toml:"focus_duration"`
	// CameraFile holds a camera state string restored at startup.
	CameraFile string `toml:"camera_file"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	c := DefaultClearColor
	return Config{
		Window: WindowConfig{
			Title:  "cadview",
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
		},
		View: ViewConfig{
			ClearColor:    []float64{c.R, c.G, c.B, c.A},
			FocusDuration: defaultFocusDuration,
		},
		ScreenshotDir: defaultScreenshotDir,
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns
// the defaults. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data over the defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	defaultColor := cfg.View.ClearColor
	cfg.View.ClearColor = nil
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, err
	}
	if cfg.View.ClearColor == nil {
		cfg.View.ClearColor = defaultColor
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []string
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Sprintf("window size %dx%d is negative", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS < 0 {
		errs = append(errs, fmt.Sprintf("tps %d is negative", c.Window.TPS))
	}
	if n := len(c.View.ClearColor); n != 3 && n != 4 {
		errs = append(errs, fmt.Sprintf("clear_color has %d components, want 3 or 4", n))
	}
	for _, v := range c.View.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("clear_color component %g outside [0, 1]", v))
			break
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ClearColor returns the configured background color.
func (c *Config) ClearColor() Color {
	cc := c.View.ClearColor
	col := Color{A: 1}
	if len(cc) >= 3 {
		col.R, col.G, col.B = cc[0], cc[1], cc[2]
	}
	if len(cc) == 4 {
		col.A = cc[3]
	}
	return col
}

// RunConfig converts the configuration to viewer options, reading the
// camera file if one is set.
func (c *Config) RunConfig() (RunConfig, error) {
	rc := RunConfig{
		Title:         c.Window.Title,
		Width:         c.Window.Width,
		Height:        c.Window.Height,
		TPS:           c.Window.TPS,
		ClearColor:    c.ClearColor(),
		ShowHUD:       c.View.ShowHUD,
		Debug:         c.Debug,
		FocusDuration: float32(c.View.FocusDuration),
		ScreenshotDir: c.ScreenshotDir,
	}
	if rc.FocusDuration == 0 {
		// zero in the file means instant, not default
		rc.FocusDuration = -1
	}
	if c.View.CameraFile != "" {
		data, err := os.ReadFile(c.View.CameraFile)
		if err != nil {
			return RunConfig{}, fmt.Errorf("camera file: %w", err)
		}
		rc.CameraState = strings.TrimSpace(string(data))
	}
	return rc, nil
}
