package viewer

import (
	"context"

	uv "github.com/charmbracelet/ultraviolet"
)

// Action is what the UI loop must do after an event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSnapshot
)

// Orbit input sensitivity.
const (
	keyRotateStep = 0.1  // radians per arrow key press
	dragRadPerCol = 0.03 // radians per column dragged
	dragRadPerRow = 0.06 // rows are about twice as tall as columns
	zoomStep      = 0.9
)

// HandleEvent routes one terminal event. Resize events are left to the
// caller, which also has to resize the terminal itself.
func (a *App) HandleEvent(ctx context.Context, ev uv.Event) Action {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return a.HandleKey(ctx, ev.String())
	case uv.PasteEvent:
		if a.notice != "" {
			a.Dismiss()
		}
		a.Paste(ctx, ev.Content)
	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft {
			a.press(ev.X, ev.Y)
		}
	case uv.MouseReleaseEvent:
		a.release()
	case uv.MouseMotionEvent:
		a.Drag(ev.X, ev.Y)
	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			a.zoom(zoomStep)
		case uv.MouseWheelDown:
			a.zoom(1 / zoomStep)
		}
	}
	return ActionNone
}

// Drag rotates the orbit while the left button is held on the canvas.
func (a *App) Drag(x, y int) {
	if !a.drag.active {
		return
	}
	dx, dy := x-a.drag.x, y-a.drag.y
	if dx == 0 && dy == 0 {
		return
	}
	a.drag.moved = true
	a.drag.x, a.drag.y = x, y
	a.orbit.Rotate(-float64(dx)*dragRadPerCol, -float64(dy)*dragRadPerRow)
}

func (a *App) zoom(factor float64) {
	if a.picker != nil {
		if factor < 1 {
			a.picker.Move(-1)
		} else {
			a.picker.Move(1)
		}
		return
	}
	a.orbit.Zoom(factor)
}

// HandleKey handles a key press given in ultraviolet's keystroke notation.
func (a *App) HandleKey(ctx context.Context, key string) Action {
	if key == "ctrl+c" {
		return ActionQuit
	}
	if a.notice != "" {
		a.Dismiss()
		return ActionNone
	}
	if a.picker != nil {
		a.pickerKey(ctx, key)
		return ActionNone
	}

	switch key {
	case "q", "esc":
		return ActionQuit
	case "p":
		return ActionSnapshot
	case "o":
		a.OpenPicker()
	case "g":
		a.Toggle(ToggleGrid)
	case "a":
		a.Toggle(ToggleAxes)
	case "w":
		a.Toggle(ToggleWireframe)
	case "?":
		a.showHelp = !a.showHelp
	case "r":
		a.orbit.Reset()
		a.orbit.Apply(a.camera)
	case "left":
		a.orbit.Rotate(-keyRotateStep, 0)
	case "right":
		a.orbit.Rotate(keyRotateStep, 0)
	case "up":
		a.orbit.Rotate(0, -keyRotateStep)
	case "down":
		a.orbit.Rotate(0, keyRotateStep)
	case "+", "=":
		a.orbit.Zoom(zoomStep)
	case "-", "_":
		a.orbit.Zoom(1 / zoomStep)
	}
	return ActionNone
}

func (a *App) pickerKey(ctx context.Context, key string) {
	p := a.picker
	switch key {
	case "esc", "q":
		a.ClosePicker()
	case "up", "k":
		p.Move(-1)
	case "down", "j":
		p.Move(1)
	case "pgup":
		p.Move(-pickerPage)
	case "pgdown":
		p.Move(pickerPage)
	case "space":
		p.ToggleMark()
		p.Move(1)
	case "backspace", "left", "h":
		if err := p.Up(); err != nil {
			a.fail("pick", err)
		}
	case ".":
		p.ShowHidden = !p.ShowHidden
		if err := p.Refresh(); err != nil {
			a.fail("pick", err)
		}
	case "enter", "right", "l":
		paths, done, err := p.Enter()
		if err != nil {
			a.fail("pick", err)
			return
		}
		if done {
			a.startDir = p.Dir
			a.Pick(ctx, paths)
		}
	}
}
