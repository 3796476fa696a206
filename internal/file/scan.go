package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TorrentExt is the extension ListTorrents looks for
const TorrentExt = ".torrent"

// ListTorrents returns the paths of the regular .torrent files directly
// inside dir, sorted by name. Subdirectories are not searched.
func ListTorrents(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), TorrentExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return paths, nil
}
