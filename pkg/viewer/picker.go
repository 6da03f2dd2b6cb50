package viewer

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/meshview/pkg/loader"
)

const pickerPage = 10

// Entry is one row of the picker.
type Entry struct {
	Name string
	Dir  bool
}

// Picker is a minimal file browser limited to directories and supported
// model files.
type Picker struct {
	Dir        string
	Entries    []Entry
	Cursor     int
	ShowHidden bool

	marked  map[string]bool
	offset  int // first visible entry
	listTop int // screen row of the first visible entry, -1 until drawn
	visible int // entries that fit on screen
}

// NewPicker opens a picker on dir.
func NewPicker(dir string) (*Picker, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	p := &Picker{Dir: abs, marked: make(map[string]bool), listTop: -1}
	if err := p.Refresh(); err != nil {
		return nil, err
	}
	return p, nil
}

// Refresh re-reads the current directory. Directories come first, then
// files, each sorted by name.
func (p *Picker) Refresh() error {
	des, err := os.ReadDir(p.Dir)
	if err != nil {
		return &loader.ReadError{Path: p.Dir, Err: err}
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if !p.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if fi, err := os.Stat(filepath.Join(p.Dir, name)); err == nil {
				isDir = fi.IsDir()
			}
		}
		if !isDir && !loader.Supported(name) {
			continue
		}
		entries = append(entries, Entry{Name: name, Dir: isDir})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Dir != b.Dir {
			if a.Dir {
				return -1
			}
			return 1
		}
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	p.Entries = entries
	p.Cursor = min(p.Cursor, max(len(entries)-1, 0))
	p.offset = 0
	return nil
}

// Current returns the highlighted entry.
func (p *Picker) Current() (Entry, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Entries) {
		return Entry{}, false
	}
	return p.Entries[p.Cursor], true
}

// Move shifts the highlight by delta, stopping at either end.
func (p *Picker) Move(delta int) {
	if len(p.Entries) == 0 {
		return
	}
	p.Cursor = max(0, min(len(p.Entries)-1, p.Cursor+delta))
}

// ToggleMark marks or unmarks the highlighted file. Directories cannot be
// marked.
func (p *Picker) ToggleMark() {
	e, ok := p.Current()
	if !ok || e.Dir {
		return
	}
	path := filepath.Join(p.Dir, e.Name)
	if p.marked[path] {
		delete(p.marked, path)
	} else {
		p.marked[path] = true
	}
}

// Marked reports whether path is marked.
func (p *Picker) Marked(path string) bool {
	return p.marked[path]
}

// Selection returns the marked paths in sorted order.
func (p *Picker) Selection() []string {
	paths := make([]string, 0, len(p.marked))
	for path := range p.marked {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Enter descends into the highlighted directory, or finishes the pick.
// A pick returns the marked files if any, otherwise the highlighted file.
func (p *Picker) Enter() (paths []string, done bool, err error) {
	if len(p.marked) > 0 {
		return p.Selection(), true, nil
	}
	e, ok := p.Current()
	if !ok {
		return nil, false, nil
	}
	if e.Dir {
		return nil, false, p.chdir(filepath.Join(p.Dir, e.Name))
	}
	return []string{filepath.Join(p.Dir, e.Name)}, true, nil
}

// Up moves to the parent directory, highlighting the one just left.
func (p *Picker) Up() error {
	parent := filepath.Dir(p.Dir)
	if parent == p.Dir {
		return nil
	}
	left := filepath.Base(p.Dir)
	if err := p.chdir(parent); err != nil {
		return err
	}
	for i, e := range p.Entries {
		if e.Dir && e.Name == left {
			p.Cursor = i
			break
		}
	}
	return nil
}

func (p *Picker) chdir(dir string) error {
	prev, prevEntries := p.Dir, p.Entries
	p.Dir = dir
	p.Cursor = 0
	if err := p.Refresh(); err != nil {
		p.Dir, p.Entries = prev, prevEntries
		return err
	}
	return nil
}

// ClickRow highlights the entry drawn on screen row y. Clicking the
// highlighted directory again opens it; a directory that cannot be listed
// leaves the picker where it was and returns the error.
func (p *Picker) ClickRow(y int) error {
	if p.listTop < 0 || y < p.listTop || y >= p.listTop+p.visible {
		return nil
	}
	i := p.offset + y - p.listTop
	if i >= len(p.Entries) {
		return nil
	}
	if i == p.Cursor && p.Entries[i].Dir {
		return p.chdir(filepath.Join(p.Dir, p.Entries[i].Name))
	}
	p.Cursor = i
	return nil
}

// Draw renders the picker as a centered panel.
func (p *Picker) Draw(scr uv.Screen) {
	b := scr.Bounds()
	width := min(b.Dx()-4, 64)
	height := min(b.Dy()-2, len(p.Entries)+5)
	if width < 20 || height < 6 {
		p.listTop = -1
		return
	}
	x := (b.Dx() - width) / 2
	y := (b.Dy() - height) / 2

	p.visible = height - 5
	if p.Cursor < p.offset {
		p.offset = p.Cursor
	}
	if p.Cursor >= p.offset+p.visible {
		p.offset = p.Cursor - p.visible + 1
	}

	lines := make([]string, 0, height)
	exts := "." + strings.Join(loader.Formats(), " .")
	lines = append(lines,
		bold+fgWhite+" Open model "+reset+bgBlack+dim+"("+exts+")",
		fgCyan+" "+truncateLeft(p.Dir, width-2),
		"",
	)
	for i := p.offset; i < p.offset+p.visible; i++ {
		if i >= len(p.Entries) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, p.row(i, width))
	}
	lines = append(lines, dim+" space mark  enter open  backspace up  esc close")
	p.listTop = y + 3
	panel(scr, x, y, width, lines)
}

func (p *Picker) row(i, width int) string {
	e := p.Entries[i]
	cursor := "  "
	if i == p.Cursor {
		cursor = fgYellow + "› " + fgWhite
	}
	name := e.Name
	if e.Dir {
		return cursor + fgCyan + truncateRight(name+"/", width-4)
	}
	mark := "[ ] "
	if p.marked[filepath.Join(p.Dir, name)] {
		mark = fgGreen + "[✓] " + fgWhite
	}
	return cursor + mark + truncateRight(name, width-8)
}

func truncateRight(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func truncateLeft(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
