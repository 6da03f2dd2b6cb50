package viewer

import (
	"errors"

	"github.com/taigrr/meshview/pkg/loader"
	"github.com/taigrr/meshview/pkg/models"
)

// ErrBusy is returned when a file is dropped or picked while another one is
// still loading.
var ErrBusy = errors.New("a file is already loading")

// ErrNoModel is reported when a load finishes without an error but also
// without a model.
var ErrNoModel = errors.New("load produced no model")

// Message maps an error to the text shown in the notification box.
func Message(err error) string {
	var (
		readErr  *loader.ReadError
		parseErr *loader.ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, loader.ErrUnsupportedFormat):
		return "Unsupported file format. Please upload an OBJ, STL, or 3MF file."
	case errors.Is(err, loader.ErrMultipleFiles):
		return "Only a single file is supported."
	case errors.Is(err, loader.ErrNoFile):
		return "No file selected."
	case errors.Is(err, ErrBusy):
		return "A file is still loading. Please wait."
	case errors.Is(err, ErrNoModel):
		return "Error parsing geometry. The file might be corrupted or in an unsupported format."
	case errors.Is(err, models.ErrDegenerateGeometry):
		return "The model has no size: its geometry is empty or collapsed to a point."
	case errors.As(err, &parseErr):
		return "Error parsing geometry. The file might be corrupted or in an unsupported format."
	case errors.As(err, &readErr):
		return "Error reading file. Please try again."
	default:
		return "Error: " + err.Error()
	}
}
