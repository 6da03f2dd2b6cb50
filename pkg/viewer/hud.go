package viewer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/meshview/pkg/render"
)

// ANSI escape codes for the overlays
const (
	reset    = "\x1b[0m"
	bold     = "\x1b[1m"
	dim      = "\x1b[2m"
	bgBlack  = "\x1b[40m"
	fgWhite  = "\x1b[97m"
	fgGreen  = "\x1b[92m"
	fgYellow = "\x1b[93m"
	fgCyan   = "\x1b[96m"
	fgRed    = "\x1b[91m"
)

// Toggle identifies one of the HUD checkboxes.
type Toggle int

const (
	ToggleGrid Toggle = iota
	ToggleAxes
	ToggleWireframe
)

func (t Toggle) String() string {
	switch t {
	case ToggleGrid:
		return "grid"
	case ToggleAxes:
		return "axes"
	case ToggleWireframe:
		return "wireframe"
	default:
		return "unknown"
	}
}

var hudControls = []struct {
	toggle Toggle
	label  string
}{
	{ToggleGrid, "Grid"},
	{ToggleAxes, "Axes"},
	{ToggleWireframe, "Wireframe"},
}

// Checkbox row layout on the bottom line.
const (
	checkboxStart = 1
	checkboxGap   = 2
)

// checkboxSpan returns the columns [x0, x1) covered by control i.
func checkboxSpan(i int) (x0, x1 int) {
	x := checkboxStart
	for j, c := range hudControls {
		w := len("[ ] ") + len(c.label)
		if j == i {
			return x, x + w
		}
		x += w + checkboxGap
	}
	return x, x
}

// HUD renders the status bars and overlays on top of the scene.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// Tick updates the FPS counter (call once per frame).
func (h *HUD) Tick(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the frame rate measured over the last second.
func (h *HUD) FPS() float64 { return h.fps }

// HitTest returns the checkbox under cell (x, y) of a screen rows tall.
func (h *HUD) HitTest(x, y, rows int) (Toggle, bool) {
	if y != rows-1 {
		return 0, false
	}
	for i, c := range hudControls {
		x0, x1 := checkboxSpan(i)
		if x >= x0 && x < x1 {
			return c.toggle, true
		}
	}
	return 0, false
}

// Draw paints the top bar, the checkbox row and whichever overlays are
// active.
func (h *HUD) Draw(scr uv.Screen, a *App) {
	b := scr.Bounds()
	width, height := b.Dx(), b.Dy()

	// Top left: FPS
	render.DrawText(scr, 0, 0, fmt.Sprintf("%s%s %.0f FPS %s", bgBlack, fgGreen, h.fps, reset))

	// Top middle: what is loading, or the state
	title := "no model"
	if p := a.Loading(); p != "" {
		title = "Loading " + filepath.Base(p) + "…"
	} else if a.State() == Loaded {
		title = a.title
	}
	titleCol := max((width-utf8.RuneCountInString(title)-2)/2, 0)
	render.DrawText(scr, titleCol, 0, fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, title, reset))

	// Top right: geometry count
	meshes, _, tris := a.scene.Stats()
	stats := fmt.Sprintf(" %d meshes %d tris ", meshes, tris)
	render.DrawText(scr, max(width-len(stats), 0), 0, fmt.Sprintf("%s%s%s%s%s", bgBlack, fgCyan, bold, stats, reset))

	// Bottom: checkboxes and hint
	for i, c := range hudControls {
		x0, _ := checkboxSpan(i)
		box := "[ ]"
		if a.toggleState(c.toggle) {
			box = fgGreen + "[✓]" + fgWhite
		}
		render.DrawText(scr, x0, height-1, fmt.Sprintf("%s%s%s %s%s", bgBlack, fgWhite, box, c.label, reset))
	}
	hint := " ? help  o open "
	render.DrawText(scr, max(width-len(hint), 0), height-1, fmt.Sprintf("%s%s%s%s%s", bgBlack, dim, fgYellow, hint, reset))

	if a.welcome && a.picker == nil {
		drawWelcome(scr)
	}
	if a.showHelp {
		drawHelp(scr)
	}
	if a.picker != nil {
		a.picker.Draw(scr)
	}
	if a.notice != "" {
		drawNotice(scr, a.notice)
	}
}

func drawWelcome(scr uv.Screen) {
	lines := []string{
		bold + fgWhite + " Welcome to meshview",
		"",
		" Drop an STL, OBJ or 3MF file onto this window,",
		" or click anywhere to browse for one.",
		"",
		dim + " Drag to orbit, scroll to zoom, ? for help",
	}
	centeredPanel(scr, 52, lines)
}

var helpLines = []string{
	bold + fgWhite + " Controls",
	"",
	" Drag, arrows   orbit",
	" Scroll, + -    zoom",
	" r              reset view",
	" o              open file",
	" g / a / w      grid / axes / wireframe",
	" p              save snapshot",
	" ?              toggle this help",
	" q, esc         quit",
}

func drawHelp(scr uv.Screen) {
	centeredPanel(scr, 44, helpLines)
}

func drawNotice(scr uv.Screen, msg string) {
	width := min(scr.Bounds().Dx()-4, 56)
	if width < 12 {
		return
	}
	lines := []string{bold + fgRed + " Notice", ""}
	for _, l := range wrap(msg, width-2) {
		lines = append(lines, " "+l)
	}
	lines = append(lines, "", dim+" press any key to continue")
	centeredPanel(scr, width, lines)
}

func centeredPanel(scr uv.Screen, width int, lines []string) {
	b := scr.Bounds()
	width = min(width, b.Dx())
	x := max((b.Dx()-width)/2, 0)
	y := max((b.Dy()-len(lines))/2, 0)
	panel(scr, x, y, width, lines)
}

// panel draws lines on a black box of the given width.
func panel(scr uv.Screen, x, y, width int, lines []string) {
	blank := strings.Repeat(" ", width)
	for i, l := range lines {
		render.DrawText(scr, x, y+i, bgBlack+blank+reset)
		render.DrawText(scr, x, y+i, bgBlack+fgWhite+l+reset)
	}
}

// wrap breaks s into lines of at most width runes at spaces.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(s) {
		n := utf8.RuneCountInString(cur.String())
		if n > 0 && n+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
