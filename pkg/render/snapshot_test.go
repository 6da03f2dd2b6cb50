package render

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/taigrr/meshview/pkg/math3d"
)

func TestImageFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out.png", "png", false},
		{"OUT.PNG", "png", false},
		{"shots/model.webp", "webp", false},
		{"out.jpg", "", true},
		{"noext", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, err := ImageFormat(tc.path)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedImageFormat) {
					t.Errorf("err = %v, want ErrUnsupportedImageFormat", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ImageFormat(%q) = %q, %v; want %q", tc.path, got, err, tc.want)
			}
		})
	}
}

func TestRenderImage(t *testing.T) {
	bg := RGB(46, 46, 46)
	for _, ss := range []int{0, 1, 2} {
		cam := NewCamera()
		drawn := 0
		img, err := RenderImage(cam, SnapshotOptions{
			Width:       64,
			Height:      32,
			Supersample: ss,
			Background:  bg,
		}, func(r *Rasterizer) {
			drawn++
			want := 64 * max(ss, 1)
			if r.Width() != want {
				t.Errorf("supersample %d: render width = %d, want %d", ss, r.Width(), want)
			}
		})
		if err != nil {
			t.Fatalf("RenderImage: %v", err)
		}
		if drawn != 1 {
			t.Errorf("draw called %d times, want 1", drawn)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
			t.Errorf("supersample %d: image %v, want 64x32", ss, b)
		}
		if cam.AspectRatio != 2 {
			t.Errorf("aspect = %v, want 2", cam.AspectRatio)
		}
		r, g, b, _ := img.At(0, 0).RGBA()
		if !near(r>>8, 46) || !near(g>>8, 46) || !near(b>>8, 46) {
			t.Errorf("supersample %d: corner = %d,%d,%d, want background", ss, r>>8, g>>8, b>>8)
		}
	}
}

func near(v, want uint32) bool {
	return v+1 >= want && v <= want+1
}

func TestRenderImageInvalidSize(t *testing.T) {
	_, err := RenderImage(NewCamera(), SnapshotOptions{Width: 0, Height: 10}, func(*Rasterizer) {})
	if err == nil {
		t.Error("expected error for zero width")
	}
}

func TestEncodeImage(t *testing.T) {
	img, err := RenderImage(NewCamera(), SnapshotOptions{Width: 16, Height: 16, Background: ColorGray},
		func(r *Rasterizer) {
			r.DrawLine3D(math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0), ColorRed)
		})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, "png"); err != nil {
		t.Fatalf("png: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}

	buf.Reset()
	if err := EncodeImage(&buf, img, "webp"); err != nil {
		t.Fatalf("webp: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Error("webp output should start with a RIFF header")
	}

	if err := EncodeImage(&buf, img, "gif"); !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("gif err = %v, want ErrUnsupportedImageFormat", err)
	}
}

func TestSaveImage(t *testing.T) {
	img, err := RenderImage(NewCamera(), SnapshotOptions{Width: 8, Height: 8}, func(*Rasterizer) {})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := SaveImage(dir+"/shot.png", img); err != nil {
		t.Errorf("SaveImage png: %v", err)
	}
	if err := SaveImage(dir+"/shot.bmp", img); !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("SaveImage bmp err = %v, want ErrUnsupportedImageFormat", err)
	}
}
