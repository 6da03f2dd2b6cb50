// meshview - Terminal 3D Model Viewer
// View STL, OBJ and 3MF files in your terminal with full 3D rendering.
//
// Controls:
//
//	Click       - Open a file (before anything is loaded)
//	Drop/paste  - Load the dropped file
//	Mouse drag  - Orbit the camera
//	Scroll, +/- - Zoom in/out
//	Arrows      - Orbit the camera
//	R           - Reset view
//	O           - Open file picker
//	G / A / W   - Toggle grid / axes / wireframe
//	P           - Save snapshot
//	?           - Toggle help
//	Q, Esc      - Quit
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/meshview/pkg/config"
)

var version = "dev"

var (
	configPath string
	flags      config.Flags

	// Raw overlay switches; see overlayFlags.
	wireframe, showGrid, showAxes, noGrid, noAxes bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meshview [model.stl|model.obj|model.3mf]",
		Short: "Terminal 3D Model Viewer",
		Long: `meshview - Terminal 3D Model Viewer

View STL, OBJ and 3MF files in your terminal with full 3D rendering.
Drop a file onto the terminal window, or click to browse for one.

Controls:
  Mouse drag    - Orbit
  Scroll, +/-   - Zoom
  Arrows        - Orbit
  R             - Reset view
  O             - Open file picker
  G / A / W     - Toggle grid / axes / wireframe
  P             - Save snapshot
  ?             - Toggle help
  Q, Esc        - Quit`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := newFileLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			var initial string
			if len(args) == 1 {
				initial = args[0]
			}
			return runViewer(cmd.Context(), cfg, logger, initial)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: user config dir/meshview/config.yaml)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.Background, "bg", "", "Background color (R,G,B)")
	pf.StringVar(&flags.ModelColor, "color", "", "Model color (R,G,B)")
	pf.BoolVar(&wireframe, "wireframe", false, "Start in wireframe mode")
	pf.BoolVar(&showGrid, "grid", true, "Show the grid")
	pf.BoolVar(&showAxes, "axes", true, "Show the axes")
	pf.BoolVar(&noGrid, "no-grid", false, "Hide the grid (same as --grid=false)")
	pf.BoolVar(&noAxes, "no-axes", false, "Hide the axes (same as --axes=false)")

	f := cmd.Flags()
	f.IntVar(&flags.FPS, "fps", 0, "Target FPS (default 60)")
	f.StringVar(&flags.StartDir, "dir", "", "Directory the file picker opens in")
	f.StringVar(&flags.LogFile, "log-file", "", "Write logs to this file")

	cmd.AddCommand(newInfoCmd(), newSnapshotCmd(), newExportCmd(), newConfigCmd())
	return cmd
}

// overlayFlags sets the boolean overrides for the switches that were given
// on cmd's command line. Switches left out keep the config file's value.
func overlayFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	given := func(name string, v bool) *bool {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	flags.Wireframe = given("wireframe", wireframe)
	flags.ShowGrid = given("grid", showGrid)
	flags.ShowAxes = given("axes", showAxes)
	if v := given("no-grid", !noGrid); v != nil {
		flags.ShowGrid = v
	}
	if v := given("no-axes", !noAxes); v != nil {
		flags.ShowAxes = v
	}
}

// loadConfig reads the config file and applies the command-line overrides
// given to cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	overlayFlags(cmd)
	path := configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
