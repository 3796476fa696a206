package torrent

import (
	"fmt"
	"os"

	"bittorrentparser/internal/bencode"
)

// Open reads and parses a .torrent file
func Open(filename string) (*Metainfo, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read torrent file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a torrent and wraps it in a Metainfo view. Only decode
// errors are returned; missing fields are left for the accessors to report.
func Parse(data []byte) (*Metainfo, error) {
	decoder := bencode.NewDecoder(data)
	decoder.CaptureRaw()

	root, err := decoder.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode bencode: %w", err)
	}

	m := NewMetainfo(root)

	// The info hash must be taken over the exact encoded bytes
	if raw, ok := decoder.Raw("info"); ok && m.Info() != nil {
		m.infoHash = GenerateInfoHash(raw)
		m.hasInfoHash = true
	}

	return m, nil
}
