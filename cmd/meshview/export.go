package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/meshview/pkg/loader"
	"github.com/taigrr/meshview/pkg/models"
)

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <model> [-o out.glb]",
		Short: "Convert a model to binary glTF",
		Long:  "Normalize a model the way the viewer does and write it as a binary glTF (.glb) file, one mesh per part.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newStderrLogger(cfg)
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = glbPath(args[0])
			}
			model, _, err := loader.LoadFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			if err := models.SaveGLB(out, model); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			logger.Info("exported", "path", out, "parts", len(model.Parts), "triangles", model.TriangleCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: input name with .glb)")
	return cmd
}

// glbPath swaps the extension of path for .glb.
func glbPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".glb"
}
