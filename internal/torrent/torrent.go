package torrent

import "bittorrentparser/internal/bencode"

// Metainfo is a read-only view over a decoded .torrent file. Every accessor
// tolerates missing or mistyped keys and reports them as absent.
type Metainfo struct {
	root bencode.Value

	// Calculated fields (not from bencode)
	infoHash    InfoHash
	hasInfoHash bool
}

// NewMetainfo wraps a decoded root value. The root is expected to be a
// dictionary; anything else yields a view where every field is absent.
func NewMetainfo(root bencode.Value) *Metainfo {
	return &Metainfo{root: root}
}

// Root returns the decoded value the view wraps
func (m *Metainfo) Root() bencode.Value {
	return m.root
}

func (m *Metainfo) dict() *bencode.Dict {
	d, _ := m.root.AsDict()
	return d
}

// CreationDate returns the "creation date" field in Unix seconds
func (m *Metainfo) CreationDate() (int64, bool) {
	v, ok := m.dict().Get("creation date")
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// CreatedBy returns the name of the client that authored the file
func (m *Metainfo) CreatedBy() ([]byte, bool) {
	return bytesAt(m.dict(), "created by")
}

// Announce returns the tracker URL
func (m *Metainfo) Announce() ([]byte, bool) {
	return bytesAt(m.dict(), "announce")
}

// Comment returns the free-form "comment" field
func (m *Metainfo) Comment() ([]byte, bool) {
	return bytesAt(m.dict(), "comment")
}

// AnnounceList returns the tiers of the "announce-list" extension. Tiers
// without any usable URL are dropped.
func (m *Metainfo) AnnounceList() [][][]byte {
	v, ok := m.dict().Get("announce-list")
	if !ok {
		return nil
	}
	tiers, _ := v.AsList()

	var out [][][]byte
	for _, tierValue := range tiers {
		tier, ok := tierValue.AsList()
		if !ok {
			continue
		}
		var urls [][]byte
		for _, u := range tier {
			if b, ok := u.AsBytes(); ok {
				urls = append(urls, b)
			}
		}
		if len(urls) > 0 {
			out = append(out, urls)
		}
	}
	return out
}

// Info returns a view of the "info" dictionary, or nil if there is none
func (m *Metainfo) Info() *Info {
	v, ok := m.dict().Get("info")
	if !ok {
		return nil
	}
	d, ok := v.AsDict()
	if !ok {
		return nil
	}
	return &Info{dict: d}
}

// Files returns the file manifest described by the info dictionary
func (m *Metainfo) Files() []FileEntry {
	info := m.Info()
	if info == nil {
		return nil
	}
	return info.Files()
}

// InfoHash returns the SHA-1 of the encoded info dictionary. It is only set
// on views created by Parse.
func (m *Metainfo) InfoHash() (InfoHash, bool) {
	return m.infoHash, m.hasInfoHash
}

func bytesAt(d *bencode.Dict, key string) ([]byte, bool) {
	v, ok := d.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsBytes()
}

func intAt(d *bencode.Dict, key string) *int64 {
	v, ok := d.Get(key)
	if !ok {
		return nil
	}
	n, ok := v.AsInt()
	if !ok {
		return nil
	}
	return &n
}
