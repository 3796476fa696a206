package torrent

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FileEntry is one line of the file manifest. Name is the torrent's
// "name"; in multi-file torrents Path holds the entry's own path below it.
// Nil fields were absent from the metainfo.
type FileEntry struct {
	Name   []byte
	Length *int64
	Path   [][]byte
	MD5Sum []byte
}

// ValidatePath checks that the name and path components are safe to join
// below a directory
func (f *FileEntry) ValidatePath() error {
	if len(f.Name) == 0 {
		return errors.New("file name is missing")
	}

	components := append([][]byte{f.Name}, f.Path...)
	for i, c := range components {
		component := string(c)
		if component == "" {
			return fmt.Errorf("empty path component at index %d", i)
		}
		if component == "." || component == ".." {
			return fmt.Errorf("invalid path component: %s", component)
		}
		if strings.ContainsAny(component, "/\\\x00") {
			return fmt.Errorf("invalid characters in path component: %q", component)
		}
	}

	return nil
}

// RelPath returns the entry's location relative to the payload root, using
// the OS path separator
func (f *FileEntry) RelPath() (string, error) {
	if err := f.ValidatePath(); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(f.Path)+1)
	parts = append(parts, string(f.Name))
	for _, p := range f.Path {
		parts = append(parts, string(p))
	}
	return filepath.Join(parts...), nil
}
