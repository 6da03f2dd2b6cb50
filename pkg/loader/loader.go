// Package loader picks a parser by file extension, reads and parses the
// file off the UI goroutine, and normalizes the result.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/taigrr/meshview/pkg/models"
)

// Encoding is how a format's parser wants the file contents.
type Encoding int

const (
	// Binary parsers receive the raw bytes.
	Binary Encoding = iota
	// Text parsers receive the contents as a string.
	Text
)

func (e Encoding) String() string {
	if e == Text {
		return "text"
	}
	return "binary"
}

// Format is one registry entry.
type Format struct {
	Name     string // Extension without the dot, lowercase
	Encoding Encoding

	binary func(name string, data []byte) (*models.Model, error)
	text   func(name, text string) (*models.Model, error)
}

// Parse decodes data with this format's parser.
func (f Format) Parse(name string, data []byte) (*models.Model, error) {
	if f.Encoding == Text {
		return f.text(name, string(data))
	}
	return f.binary(name, data)
}

var registry = map[string]Format{
	"stl": {Name: "stl", Encoding: Binary, binary: models.ParseSTL},
	"obj": {Name: "obj", Encoding: Text, text: models.ParseOBJ},
	"3mf": {Name: "3mf", Encoding: Binary, binary: models.Parse3MF},
}

// Extension returns the lowercased text after the final '.' of the file
// name, or "" when there is none.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// Lookup returns the format registered for path's extension.
func Lookup(path string) (Format, error) {
	ext := Extension(path)
	f, ok := registry[ext]
	if !ok {
		if ext == "" {
			return Format{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
		}
		return Format{}, fmt.Errorf(".%s: %w", ext, ErrUnsupportedFormat)
	}
	return f, nil
}

// Supported reports whether path has a registered extension.
func Supported(path string) bool {
	_, ok := registry[Extension(path)]
	return ok
}

// Formats returns the registered extensions, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Result is the outcome of one asynchronous load.
type Result struct {
	Path  string
	Model *models.Model
	Fits  []models.Fit
	Err   error
}

// Load validates the extension, then reads, parses and normalizes the file
// on a new goroutine. The returned channel yields exactly one Result and is
// then closed. An unsupported extension is reported without reading.
func Load(ctx context.Context, path string) <-chan Result {
	ch := make(chan Result, 1)
	format, err := Lookup(path)
	if err != nil {
		ch <- Result{Path: path, Err: err}
		close(ch)
		return ch
	}

	go func() {
		defer close(ch)
		model, fits, err := loadFormat(ctx, path, format)
		ch <- Result{Path: path, Model: model, Fits: fits, Err: err}
	}()
	return ch
}

// LoadFile is the blocking form of Load.
func LoadFile(ctx context.Context, path string) (*models.Model, []models.Fit, error) {
	format, err := Lookup(path)
	if err != nil {
		return nil, nil, err
	}
	return loadFormat(ctx, path, format)
}

// Parse dispatches on path's extension and normalizes data that has already
// been read.
func Parse(path string, data []byte) (*models.Model, []models.Fit, error) {
	format, err := Lookup(path)
	if err != nil {
		return nil, nil, err
	}
	return parseFormat(path, format, data)
}

func loadFormat(ctx context.Context, path string, format Format) (*models.Model, []models.Fit, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &ReadError{Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return parseFormat(path, format, data)
}

func parseFormat(path string, format Format, data []byte) (*models.Model, []models.Fit, error) {
	name := filepath.Base(path)
	model, err := format.Parse(name, data)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Format: format.Name, Err: err}
	}
	fits, err := models.Normalize(model)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize %s: %w", name, err)
	}
	return model, fits, nil
}
