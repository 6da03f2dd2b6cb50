package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedImageFormat is returned for snapshot paths that are neither
// .png nor .webp.
var ErrUnsupportedImageFormat = errors.New("unsupported image format (use .png or .webp)")

// SnapshotOptions controls offscreen rendering.
type SnapshotOptions struct {
	Width       int   // Output width in pixels
	Height      int   // Output height in pixels
	Supersample int   // Render at this multiple, then downscale; <= 1 disables
	Background  Color // Clear color
	// DisableBackfaceCulling renders both sides of every triangle.
	DisableBackfaceCulling bool
}

// RenderImage renders one frame offscreen. The camera's aspect ratio is set
// to match the output; draw is called once with a fresh rasterizer.
func RenderImage(cam *Camera, opts SnapshotOptions, drawFn func(r *Rasterizer)) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", opts.Width, opts.Height)
	}
	ss := max(opts.Supersample, 1)

	fb := NewFramebuffer(opts.Width*ss, opts.Height*ss)
	cam.SetAspectRatio(float64(opts.Width) / float64(opts.Height))
	r := NewRasterizer(cam, fb)
	r.DisableBackfaceCulling = opts.DisableBackfaceCulling
	r.BeginFrame(opts.Background)
	drawFn(r)

	img := fb.ToImage()
	if ss == 1 {
		return img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// ImageFormat returns "png" or "webp" for a snapshot path.
func ImageFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedImageFormat)
	}
}

// EncodeImage writes img in the given format ("png" or "webp").
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("%s: %w", format, ErrUnsupportedImageFormat)
	}
}

// SaveImage writes img to path, choosing the encoder from the extension.
func SaveImage(path string, img image.Image) error {
	format, err := ImageFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := EncodeImage(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return f.Close()
}
