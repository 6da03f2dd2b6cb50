// Package viewer holds the interactive application state: the Idle/Loaded
// state machine, file selection by drop or picker, orbit input and the HUD.
// Everything here runs on the UI goroutine; only file loads run elsewhere.
package viewer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/meshview/pkg/loader"
	"github.com/taigrr/meshview/pkg/render"
	"github.com/taigrr/meshview/pkg/scene"
)

// State is the application state.
type State int

const (
	// Idle means no model has been loaded yet.
	Idle State = iota
	// Loaded means at least one model is in the scene. There is no way back.
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "idle"
}

// LoadFunc starts an asynchronous load. loader.Load is the default.
type LoadFunc func(ctx context.Context, path string) <-chan loader.Result

// Options configures a new App.
type Options struct {
	Scene         *scene.Scene // Defaults to scene.New(scene.DefaultOptions())
	FPS           int          // Drives the orbit springs
	StartDir      string       // First directory shown by the picker
	CullBackfaces bool
	Logger        *log.Logger // Defaults to a logger that discards everything
	Load          LoadFunc
}

// App is the application state passed to every event handler.
type App struct {
	scene  *scene.Scene
	camera *render.Camera
	orbit  *render.Orbit
	fb     *render.Framebuffer
	raster *render.Rasterizer
	hud    *HUD
	logger *log.Logger
	load   LoadFunc

	state       State
	pending     <-chan loader.Result
	pendingPath string

	title    string // last model loaded
	notice   string
	welcome  bool
	showHelp bool
	picker   *Picker
	startDir string

	cols, rows int
	drag       dragState
}

type dragState struct {
	active bool
	moved  bool
	x, y   int
}

// NewApp creates an idle application with an empty scene and a 1x1 cell
// viewport; call Resize before drawing.
func NewApp(opts Options) *App {
	if opts.Scene == nil {
		opts.Scene = scene.New(scene.DefaultOptions())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Load == nil {
		opts.Load = loader.Load
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.StartDir == "" {
		opts.StartDir = "."
	}

	a := &App{
		scene:    opts.Scene,
		camera:   render.NewCamera(),
		orbit:    render.NewOrbit(opts.FPS),
		hud:      NewHUD(),
		logger:   opts.Logger,
		load:     opts.Load,
		welcome:  true,
		startDir: opts.StartDir,
	}
	a.orbit.Apply(a.camera)
	a.raster = render.NewRasterizer(a.camera, nil)
	a.raster.DisableBackfaceCulling = !opts.CullBackfaces
	a.Resize(1, 1)
	return a
}

// State returns the current application state.
func (a *App) State() State { return a.state }

// Scene returns the scene models are added to.
func (a *App) Scene() *scene.Scene { return a.scene }

// Camera returns the viewing camera.
func (a *App) Camera() *render.Camera { return a.camera }

// Orbit returns the orbit controls driving the camera.
func (a *App) Orbit() *render.Orbit { return a.orbit }

// Size returns the viewport in terminal cells.
func (a *App) Size() (cols, rows int) { return a.cols, a.rows }

// Pending returns the channel of the load in flight, or nil when there is
// none. Receiving from a nil channel blocks forever, so the UI loop can
// select on it unconditionally.
func (a *App) Pending() <-chan loader.Result { return a.pending }

// Loading returns the path being loaded, or "".
func (a *App) Loading() string { return a.pendingPath }

// Notice returns the notification being shown, or "".
func (a *App) Notice() string { return a.notice }

// Notify shows a blocking notification.
func (a *App) Notify(msg string) { a.notice = msg }

// Dismiss hides the notification.
func (a *App) Dismiss() { a.notice = "" }

// Welcome reports whether the welcome message is shown.
func (a *App) Welcome() bool { return a.welcome }

// HelpVisible reports whether the key help overlay is shown.
func (a *App) HelpVisible() bool { return a.showHelp }

// Picker returns the open file picker, or nil.
func (a *App) Picker() *Picker { return a.picker }

// Drop handles files dropped onto the terminal. It enforces the one-file
// rule and starts loading. Errors are also raised as a notification; state
// and scene are left untouched.
func (a *App) Drop(ctx context.Context, paths []string) error {
	return a.open(ctx, "drop", paths)
}

// Pick handles files chosen in the picker, under the same rules as Drop.
func (a *App) Pick(ctx context.Context, paths []string) error {
	a.picker = nil
	return a.open(ctx, "pick", paths)
}

// Paste parses pasted text as dropped paths.
func (a *App) Paste(ctx context.Context, text string) error {
	paths, err := ParseDrop(text)
	if err != nil {
		return a.fail("drop", err)
	}
	return a.Drop(ctx, paths)
}

func (a *App) open(ctx context.Context, source string, paths []string) error {
	path, err := loader.CheckSelection(paths)
	if err != nil {
		return a.fail(source, err)
	}
	if a.pending != nil {
		return a.fail(source, ErrBusy)
	}
	if _, err := loader.Lookup(path); err != nil {
		return a.fail(source, err)
	}

	a.logger.Info("loading model", "path", path, "source", source)
	a.pending = a.load(ctx, path)
	a.pendingPath = path
	return nil
}

func (a *App) fail(source string, err error) error {
	a.logger.Warn("rejected "+source, "err", err)
	a.Notify(Message(err))
	return err
}

// Complete applies the result of the load in flight. On success the model
// joins the scene, the welcome message goes away, the camera is reset and
// the state becomes Loaded.
func (a *App) Complete(res loader.Result) {
	a.pending = nil
	a.pendingPath = ""

	if res.Err == nil && res.Model == nil {
		res.Err = fmt.Errorf("%s: %w", res.Path, ErrNoModel)
	}
	if res.Err != nil {
		a.logger.Error("load failed", "path", res.Path, "err", res.Err)
		a.Notify(Message(res.Err))
		return
	}

	a.scene.AddModel(res.Model)
	a.title = res.Model.Name
	a.welcome = false
	a.orbit.Reset()
	a.orbit.Apply(a.camera)
	a.state = Loaded
	a.logger.Info("model loaded",
		"path", res.Path,
		"format", res.Model.Format,
		"parts", len(res.Model.Parts),
		"triangles", res.Model.TriangleCount(),
	)
}

// Click handles a press and release at the same cell.
func (a *App) Click(x, y int) {
	if a.press(x, y) {
		return
	}
	a.release()
}

// press reports whether the press was consumed by an overlay.
func (a *App) press(x, y int) bool {
	switch {
	case a.notice != "":
		a.Dismiss()
		return true
	case a.picker != nil:
		if err := a.picker.ClickRow(y); err != nil {
			a.fail("pick", err)
		}
		return true
	}
	if t, ok := a.hud.HitTest(x, y, a.rows); ok {
		a.Toggle(t)
		return true
	}
	a.drag = dragState{active: true, x: x, y: y}
	return false
}

func (a *App) release() {
	wasClick := a.drag.active && !a.drag.moved
	a.drag = dragState{}
	if wasClick {
		a.canvasClick()
	}
}

// canvasClick opens the picker while nothing is loaded. Once a model is
// shown the canvas belongs to the orbit controls.
func (a *App) canvasClick() {
	if a.state == Idle {
		a.OpenPicker()
	}
}

// OpenPicker shows the file picker at the last directory used.
func (a *App) OpenPicker() {
	p, err := NewPicker(a.startDir)
	if err != nil {
		a.logger.Warn("open picker", "dir", a.startDir, "err", err)
		a.Notify(Message(err))
		return
	}
	a.picker = p
}

// ClosePicker hides the picker, remembering its directory.
func (a *App) ClosePicker() {
	if a.picker != nil {
		a.startDir = a.picker.Dir
	}
	a.picker = nil
}

// Resize updates the viewport and the camera aspect ratio.
func (a *App) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	a.cols, a.rows = cols, rows
	w, h := render.FramebufferSize(cols, rows)
	a.fb = render.NewFramebuffer(w, h)
	a.raster.SetFramebuffer(a.fb)
	a.camera.SetAspectRatio(float64(w) / float64(h))
}

// Toggle flips one of the HUD checkboxes.
func (a *App) Toggle(t Toggle) {
	switch t {
	case ToggleGrid:
		a.scene.SetGridVisible(!a.scene.GridVisible())
	case ToggleAxes:
		a.scene.SetAxesVisible(!a.scene.AxesVisible())
	case ToggleWireframe:
		a.scene.SetWireframe(!a.scene.Wireframe())
	}
	a.logger.Debug("toggle", "control", t, "on", a.toggleState(t))
}

func (a *App) toggleState(t Toggle) bool {
	switch t {
	case ToggleGrid:
		return a.scene.GridVisible()
	case ToggleAxes:
		return a.scene.AxesVisible()
	default:
		return a.scene.Wireframe()
	}
}

// Frame advances the orbit springs, renders the scene and draws it with
// the overlays onto scr.
func (a *App) Frame(scr uv.Screen, now time.Time) {
	a.orbit.Update()
	a.orbit.Apply(a.camera)
	a.raster.BeginFrame(a.scene.Background())
	a.scene.Draw(a.raster)
	a.fb.Draw(scr, uv.Rect(0, 0, a.cols, a.rows))
	a.hud.Tick(now)
	a.hud.Draw(scr, a)
}

// SaveSnapshot renders the current view offscreen and writes it to path
// (.png or .webp).
func (a *App) SaveSnapshot(path string, width, height, supersample int) error {
	cam := *a.camera
	img, err := render.RenderImage(&cam, render.SnapshotOptions{
		Width:                  width,
		Height:                 height,
		Supersample:            supersample,
		Background:             a.scene.Background(),
		DisableBackfaceCulling: a.raster.DisableBackfaceCulling,
	}, a.scene.Draw)
	if err != nil {
		return err
	}
	if err := render.SaveImage(path, img); err != nil {
		return err
	}
	a.logger.Info("snapshot saved", "path", path, "width", width, "height", height)
	a.Notify("Saved " + filepath.Base(path))
	return nil
}
