// Package discovery locates recorded event stream files on disk.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StreamSuffix is the file name suffix the recorder writes streams
// with.
const StreamSuffix = ".events.jsonl"

// Scanner scans for event stream files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all event stream files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var streams []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stream path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("stream path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(d.Name(), StreamSuffix) {
			streams = append(streams, path)
		}

		return nil
	})

	return streams, err
}
