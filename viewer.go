package cadview

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const (
	defaultWindowWidth   = 1024
	defaultWindowHeight  = 768
	defaultFocusDuration = 0.35
	defaultScreenshotDir = "screenshots"
)

// RunConfig holds the options for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS sets the update rate. Zero keeps the ebiten default.
	TPS int
	// ClearColor is the background. The zero value selects DefaultClearColor.
	ClearColor Color
	// ShowHUD overlays FPS, TPS, camera mode and distance.
	ShowHUD bool
	// Debug enables model checks and per-frame stats at debug level.
	Debug bool
	// CameraState, if set, is a camera state string applied after the
	// initial focus.
	CameraState string
	// FocusDuration is the length of the animated focus in seconds. Zero
	// selects the default; negative focuses instantly.
	FocusDuration float32
	// ScreenshotDir is where screenshots are written.
	ScreenshotDir string
	// Script, if set, drives the viewer with synthetic input.
	Script *TestRunner
	// EventSink, if set, receives camera events.
	EventSink EventSink
}

// Viewer is an ebiten.Game that displays a compiled model through an orbit
// camera. The model is compiled once on creation.
type Viewer struct {
	// ShowHUD toggles the overlay.
	ShowHUD bool
	// FocusDuration is the animated focus length in seconds.
	FocusDuration float32
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	model    *Model
	scene    *CompiledScene
	bounds   BBox
	dev      *EbitenDevice
	renderer *Renderer
	camera   *Camera
	store    EventSink
	debug    bool

	width, height int
	quit          bool

	// Input
	injectQueue []syntheticPointerEvent
	cmdQueue    []Command
	cursor      Vec2
	testRunner  *TestRunner

	screenshotQueue []string
	hud             hudState
}

// NewViewer compiles model on a fresh EbitenDevice and frames it. A compile
// failure is returned and no viewer is created.
func NewViewer(model *Model, cfg RunConfig) (*Viewer, error) {
	if model == nil || model.Root == nil {
		return nil, fmt.Errorf("new viewer: no model: %w", ErrInvalidPrecondition)
	}
	if cfg.Debug {
		debugCheckModel(model.Root)
	}

	dev := NewEbitenDevice()
	scene, err := Compile(dev, model.Root)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", model.Name, err)
	}

	v := &Viewer{
		ShowHUD:       cfg.ShowHUD,
		FocusDuration: cfg.FocusDuration,
		ScreenshotDir: cfg.ScreenshotDir,
		model:         model,
		scene:         scene,
		bounds:        model.Bounds(),
		dev:           dev,
		renderer:      NewRenderer(),
		camera:        NewCamera(),
		debug:         cfg.Debug,
		width:         max(cfg.Width, 1),
		height:        max(cfg.Height, 1),
		testRunner:    cfg.Script,
	}
	if v.FocusDuration == 0 {
		v.FocusDuration = defaultFocusDuration
	}
	if v.ScreenshotDir == "" {
		v.ScreenshotDir = defaultScreenshotDir
	}
	if cfg.ClearColor != (Color{}) {
		v.renderer.ClearColor = cfg.ClearColor
	}
	v.renderer.SetDebugMode(cfg.Debug)
	v.camera.SetWindowSize(v.width, v.height)
	if cfg.EventSink != nil {
		v.SetEventSink(cfg.EventSink)
	}

	if err := v.camera.Focus(v.bounds); err != nil {
		logger.Warn("initial focus skipped", "model", model.Name, "err", err)
	}
	if cfg.CameraState != "" {
		if err := v.camera.SetFromString(cfg.CameraState); err != nil {
			v.Close()
			return nil, fmt.Errorf("restore camera: %w", err)
		}
	}
	return v, nil
}

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *Camera {
	return v.camera
}

// Scene returns the compiled scene.
func (v *Viewer) Scene() *CompiledScene {
	return v.scene
}

// Renderer returns the frame composer.
func (v *Viewer) Renderer() *Renderer {
	return v.renderer
}

// SetEventSink forwards camera events to store.
func (v *Viewer) SetEventSink(store EventSink) {
	v.store = store
	v.camera.OnModeChange(func(ev CameraEvent) {
		if v.store != nil {
			v.store.EmitEvent(ev)
		}
	})
}

// SetTestRunner attaches a script. Its steps run from Update before input.
func (v *Viewer) SetTestRunner(runner *TestRunner) {
	v.testRunner = runner
}

// Close releases the compiled scene's meshes.
func (v *Viewer) Close() {
	if v.scene != nil {
		v.scene.Dispose(v.dev)
		v.scene = nil
	}
	v.dev.Dispose()
}

// Update processes scripted, injected and real input, then advances the
// focus animation. It returns ebiten.Termination once quit is requested.
func (v *Viewer) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if v.testRunner != nil {
		v.testRunner.step(v)
	}
	if !v.processInjectedInput() {
		v.processMouse()
	}
	v.processKeys()
	v.processCommands()
	v.camera.Update(dt)
	v.hud.update(float64(dt))

	if v.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the scene, the HUD, and any queued screenshots.
func (v *Viewer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	v.dev.Begin(screen)
	v.renderer.Draw(v.dev, v.dev, v.camera, v.scene, b.Dx(), b.Dy())
	v.dev.Flush()

	if v.ShowHUD {
		v.drawHUD(screen)
	}
	v.flushScreenshots(screen)
}

// Layout accepts the window size as the render size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width = max(outsideWidth, 1)
	v.height = max(outsideHeight, 1)
	v.camera.SetWindowSize(v.width, v.height)
	return v.width, v.height
}

// --- Commands ---

// Command is a viewer action bound to a key.
type Command uint8

const (
	CommandFocus      Command = iota // re-focus on the model bounds (F)
	CommandPrintState                // log the camera state (P)
	CommandResetView                 // reset the camera axis and re-focus (R)
	CommandQuit                      // close the viewer (Escape)
)

var commandNames = [...]string{
	CommandFocus:      "focus",
	CommandPrintState: "print_state",
	CommandResetView:  "reset_view",
	CommandQuit:       "quit",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

// keyBindings maps keys to commands.
var keyBindings = []struct {
	key  ebiten.Key
	name string
	cmd  Command
}{
	{ebiten.KeyF, "F", CommandFocus},
	{ebiten.KeyP, "P", CommandPrintState},
	{ebiten.KeyR, "R", CommandResetView},
	{ebiten.KeyEscape, "Escape", CommandQuit},
}

// commandForKey resolves a key name such as "F" or "Escape".
func commandForKey(name string) (Command, error) {
	for _, b := range keyBindings {
		if b.name == name {
			return b.cmd, nil
		}
	}
	return 0, fmt.Errorf("unbound key %q", name)
}

func (v *Viewer) processCommands() {
	for _, cmd := range v.cmdQueue {
		v.runCommand(cmd)
	}
	v.cmdQueue = v.cmdQueue[:0]
}

func (v *Viewer) runCommand(cmd Command) {
	switch cmd {
	case CommandFocus:
		v.focus()
	case CommandPrintState:
		logger.Info("camera state", "state", v.camera.String())
	case CommandResetView:
		st := v.camera.State()
		st.Axis = mgl64.Ident3()
		v.camera.SetState(st)
		v.focus()
	case CommandQuit:
		v.quit = true
	}
}

func (v *Viewer) focus() {
	var err error
	if v.FocusDuration > 0 {
		err = v.camera.FocusAnimated(v.bounds, v.FocusDuration, ease.OutCubic)
	} else {
		err = v.camera.Focus(v.bounds)
	}
	if err != nil {
		logger.Warn("focus", "err", err)
	}
}

// --- Run ---

// Run opens a window showing model and blocks until it is closed. The model
// is compiled before the window opens; a compile failure is returned and no
// window is shown.
func Run(model *Model, cfg RunConfig) error {
	v, err := NewViewer(model, cfg)
	if err != nil {
		return err
	}
	defer v.Close()

	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = defaultWindowWidth
	}
	if h <= 0 {
		h = defaultWindowHeight
	}
	title := cfg.Title
	if title == "" {
		title = model.Name
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	logger.Info("viewer start", "model", model.Name, "width", w, "height", h)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
