package loader

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/taigrr/meshview/pkg/models"
)

const cubeOBJ = `o cube
v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
v 0 0 2
v 2 0 2
v 2 2 2
v 0 2 2
f 1 2 3 4
f 5 8 7 6
f 1 5 6 2
f 4 3 7 8
f 1 4 8 5
f 2 6 7 3
`

const wedgeSTL = `solid wedge
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 10 0 0
vertex 0 4 2
endloop
endfacet
endsolid wedge
`

const flatSTL = `solid dot
facet normal 0 0 1
outer loop
vertex 1 1 1
vertex 1 1 1
vertex 1 1 1
endloop
endfacet
endsolid dot
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"model.stl", "stl"},
		{"MODEL.STL", "stl"},
		{"part.v2.Obj", "obj"},
		{"/tmp/dir.with.dots/box.3MF", "3mf"},
		{"noext", ""},
		{"/tmp/dir.d/noext", ""},
		{"trailing.", ""},
		{".hidden", "hidden"},
	}
	for _, tc := range tests {
		if got := Extension(tc.path); got != tc.want {
			t.Errorf("Extension(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		path     string
		encoding Encoding
		wantErr  bool
	}{
		{"a.stl", Binary, false},
		{"a.3mf", Binary, false},
		{"a.obj", Text, false},
		{"a.gltf", 0, true},
		{"a.glb", 0, true},
		{"a", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			f, err := Lookup(tc.path)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("err = %v, want ErrUnsupportedFormat", err)
				}
				if Supported(tc.path) {
					t.Error("Supported should be false")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if f.Encoding != tc.encoding {
				t.Errorf("encoding = %s, want %s", f.Encoding, tc.encoding)
			}
			if !Supported(tc.path) {
				t.Error("Supported should be true")
			}
		})
	}
}

func TestFormats(t *testing.T) {
	if got := Formats(); !slices.Equal(got, []string{"3mf", "obj", "stl"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestCheckSelection(t *testing.T) {
	if _, err := CheckSelection(nil); !errors.Is(err, ErrNoFile) {
		t.Errorf("empty: err = %v, want ErrNoFile", err)
	}
	if _, err := CheckSelection([]string{"a.stl", "b.stl"}); !errors.Is(err, ErrMultipleFiles) {
		t.Errorf("two: err = %v, want ErrMultipleFiles", err)
	}
	if p, err := CheckSelection([]string{"a.stl"}); err != nil || p != "a.stl" {
		t.Errorf("one: %q, %v", p, err)
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		body      string
		strategy  models.Strategy
		wantParts int
	}{
		{"obj", "cube.obj", cubeOBJ, models.StrategyPerPart, 1},
		{"stl", "wedge.STL", wedgeSTL, models.StrategySingleMesh, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.body)
			m, fits, err := LoadFile(context.Background(), path)
			if err != nil {
				t.Fatal(err)
			}
			if m.Strategy != tc.strategy || len(m.Parts) != tc.wantParts {
				t.Errorf("strategy/parts = %s/%d", m.Strategy, len(m.Parts))
			}
			if len(fits) == 0 {
				t.Error("expected fits")
			}
			b := m.Bounds()
			if got := b.Size().MaxComponent(); math.Abs(got-models.TargetSize) > 1e-6 {
				t.Errorf("max dimension = %v, want %v", got, models.TargetSize)
			}
			if c := b.Center(); c.Len() > 1e-6 {
				t.Errorf("center = %v, want origin", c)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unsupported", func(t *testing.T) {
		// The file does not exist; the extension is rejected before any read.
		_, _, err := LoadFile(context.Background(), filepath.Join(dir, "scene.gltf"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("err = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFile(context.Background(), filepath.Join(dir, "missing.stl"))
		var re *ReadError
		if !errors.As(err, &re) {
			t.Fatalf("err = %v, want *ReadError", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("ReadError should unwrap to os.ErrNotExist")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "bad.obj", "v 0 0 0\nf 1 2 3\n")
		_, _, err := LoadFile(context.Background(), path)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("err = %v, want *ParseError", err)
		}
		if pe.Format != "obj" {
			t.Errorf("format = %q, want obj", pe.Format)
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		path := writeFile(t, "dot.stl", flatSTL)
		_, _, err := LoadFile(context.Background(), path)
		if !errors.Is(err, models.ErrDegenerateGeometry) {
			t.Errorf("err = %v, want ErrDegenerateGeometry", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := writeFile(t, "cube.obj", cubeOBJ)
		if _, _, err := LoadFile(ctx, path); !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestLoadDeliversOneResult(t *testing.T) {
	path := writeFile(t, "cube.obj", cubeOBJ)

	ch := Load(context.Background(), path)
	res, ok := <-ch
	if !ok {
		t.Fatal("channel closed without a result")
	}
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Path != path || res.Model == nil || res.Model.TriangleCount() != 12 {
		t.Errorf("result = %+v", res)
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after one result")
	}
}

func TestLoadUnsupportedIsImmediate(t *testing.T) {
	ch := Load(context.Background(), "model.fbx")
	// Buffered and already filled: no goroutine involved.
	select {
	case res := <-ch:
		if !errors.Is(res.Err, ErrUnsupportedFormat) {
			t.Errorf("err = %v, want ErrUnsupportedFormat", res.Err)
		}
	default:
		t.Fatal("result should be available immediately")
	}
}

func TestLoadMalformedThenValid(t *testing.T) {
	bad := writeFile(t, "bad.obj", "v 0 0 0\nf 1 2 9\n")
	res := <-Load(context.Background(), bad)
	if res.Err == nil || res.Model != nil {
		t.Fatalf("malformed file: %+v", res)
	}

	good := writeFile(t, "good.stl", wedgeSTL)
	res = <-Load(context.Background(), good)
	if res.Err != nil || res.Model == nil {
		t.Fatalf("valid file after a failure: %v", res.Err)
	}
}

func TestParse(t *testing.T) {
	m, fits, err := Parse("mem.obj", []byte(cubeOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "mem.obj" || len(fits) != 1 || fits[0].Scale != 2.5 {
		t.Errorf("name %q fits %+v", m.Name, fits)
	}
}

func BenchmarkParseOBJ(b *testing.B) {
	data := []byte(cubeOBJ)
	for b.Loop() {
		if _, _, err := Parse("bench.obj", data); err != nil {
			b.Fatal(err)
		}
	}
}
