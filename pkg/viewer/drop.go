package viewer

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ParseDrop turns the text a terminal pastes when files are dropped onto it
// into paths. Terminals differ: some quote each path, some escape spaces
// with backslashes, some send one path per line or file:// URIs. A line
// that names an existing file as a whole is taken verbatim, so an unquoted
// path with spaces stays one path.
func ParseDrop(text string) ([]string, error) {
	var paths []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isFile(line) {
			paths = append(paths, line)
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("parse dropped path %q: %w", line, err)
		}
		for _, w := range words {
			p, err := dropPath(w)
			if err != nil {
				return nil, err
			}
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func dropPath(word string) (string, error) {
	if !strings.HasPrefix(word, "file://") {
		return word, nil
	}
	u, err := url.Parse(word)
	if err != nil {
		return "", fmt.Errorf("parse dropped uri %q: %w", word, err)
	}
	return u.Path, nil
}
