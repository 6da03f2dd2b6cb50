package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/meshview/pkg/config"
	"github.com/taigrr/meshview/pkg/scene"
	"github.com/taigrr/meshview/pkg/viewer"
)

// Terminal modes enabled for the session.
const (
	mouseAnyEvent  = "\x1b[?1003h" // any-event mouse tracking
	mouseSGR       = "\x1b[?1006h" // SGR extended mouse mode
	bracketedPaste = "\x1b[?2004h" // dropped files arrive as a paste
)

// Snapshot size used by the p key.
const (
	snapshotWidth       = 1280
	snapshotHeight      = 960
	snapshotSupersample = 2
)

func newScene(cfg config.Config) *scene.Scene {
	bg, model := cfg.Colors()
	return scene.New(scene.Options{
		Background: bg,
		ModelColor: model,
		ShowGrid:   cfg.ShowGrid,
		ShowAxes:   cfg.ShowAxes,
		Wireframe:  cfg.Wireframe,
	})
}

func runViewer(ctx context.Context, cfg config.Config, logger *log.Logger, initial string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, mouseAnyEvent+mouseSGR+bracketedPaste)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?2004l\x1b[?1006l\x1b[?1003l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	app := viewer.NewApp(viewer.Options{
		Scene:         newScene(cfg),
		FPS:           cfg.FPS,
		StartDir:      cfg.StartDirectory(),
		CullBackfaces: cfg.CullBackface,
		Logger:        logger,
	})
	app.Resize(width, height)
	logger.Info("viewer started", "cols", width, "rows", height, "fps", cfg.FPS)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if initial != "" {
		app.Drop(ctx, []string{initial})
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ws, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				term.Resize(ws.Width, ws.Height)
				app.Resize(ws.Width, ws.Height)
				continue
			}
			switch app.HandleEvent(ctx, ev) {
			case viewer.ActionQuit:
				logger.Info("quit")
				return nil
			case viewer.ActionSnapshot:
				saveSnapshot(app, cfg, logger)
			}

		case res := <-app.Pending():
			app.Complete(res)

		case now := <-ticker.C:
			app.Frame(term, now)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

func saveSnapshot(app *viewer.App, cfg config.Config, logger *log.Logger) {
	name := fmt.Sprintf("meshview-%s.png", time.Now().Format("20060102-150405"))
	path := cfg.SnapshotPath(name)
	if err := app.SaveSnapshot(path, snapshotWidth, snapshotHeight, snapshotSupersample); err != nil {
		logger.Error("snapshot", "path", path, "err", err)
		app.Notify(viewer.Message(err))
	}
}
