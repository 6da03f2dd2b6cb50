package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/meshview/pkg/loader"
	"github.com/taigrr/meshview/pkg/math3d"
	"github.com/taigrr/meshview/pkg/models"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.stl|model.obj|model.3mf>",
		Short: "Display model information",
		Long:  "Display detailed information about a 3D model file including format, parts, vertex and triangle counts, bounding box, and how it is normalized for display.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, modelPath string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newStderrLogger(cfg)
	if err != nil {
		return err
	}

	// Check file exists
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	model, fits, err := loader.LoadFile(cmd.Context(), modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	logger.Debug("loaded", "path", modelPath, "fits", len(fits))

	printInfo(cmd.OutOrStdout(), filepath.Base(modelPath), info.Size(), model, fits)
	return nil
}

func printInfo(w io.Writer, name string, size int64, model *models.Model, fits []models.Fit) {
	bounds := math3d.EmptyBox()
	for _, f := range fits {
		bounds = bounds.Union(f.Bounds)
	}
	dims := bounds.Size()
	center := bounds.Center()

	fmt.Fprintf(w, "File:       %s\n", name)
	fmt.Fprintf(w, "Format:     %s\n", strings.ToUpper(model.Format))
	fmt.Fprintf(w, "Size:       %.2f KB\n", float64(size)/1024)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Parts:      %d\n", len(model.Parts))
	fmt.Fprintf(w, "Vertices:   %d\n", model.VertexCount())
	fmt.Fprintf(w, "Triangles:  %d\n", model.TriangleCount())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Bounds Min: %s\n", formatVec(bounds.Min))
	fmt.Fprintf(w, "Bounds Max: %s\n", formatVec(bounds.Max))
	fmt.Fprintf(w, "Dimensions: %.3f x %.3f x %.3f\n", dims.X, dims.Y, dims.Z)
	fmt.Fprintf(w, "Center:     %s\n", formatVec(center))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Normalize:  %s\n", model.Strategy)
	for i, f := range fits {
		label := "Fit"
		if len(fits) > 1 {
			label = fmt.Sprintf("Part %d", i+1)
			if i < len(model.Parts) && model.Parts[i].Name != "" {
				label = model.Parts[i].Name
			}
		}
		fmt.Fprintf(w, "  %-10s scale %.4f, offset %s\n", label+":", f.Scale, formatVec(f.Offset))
	}
}

func formatVec(v math3d.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
