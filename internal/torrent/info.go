package torrent

import "bittorrentparser/internal/bencode"

// Info is a view of the info dictionary of a torrent
type Info struct {
	dict *bencode.Dict
}

// Name returns "name": the file name in single-file mode, the root
// directory name in multi-file mode
func (i *Info) Name() ([]byte, bool) {
	return bytesAt(i.dict, "name")
}

// Length returns the single-file "length", or nil
func (i *Info) Length() *int64 {
	return intAt(i.dict, "length")
}

// PieceLength returns "piece length", or nil
func (i *Info) PieceLength() *int64 {
	return intAt(i.dict, "piece length")
}

// IsMultiFile returns true if "files" holds a list
func (i *Info) IsMultiFile() bool {
	_, ok := i.filesList()
	return ok
}

func (i *Info) filesList() ([]bencode.Value, bool) {
	v, ok := i.dict.Get("files")
	if !ok {
		return nil, false
	}
	return v.AsList()
}

// Files returns one entry per element of "files", each attributed to the
// shared root name, or a single entry built from "name" and "length".
// Missing fields stay nil in the entry.
func (i *Info) Files() []FileEntry {
	name, _ := i.Name()

	files, ok := i.filesList()
	if !ok {
		md5sum, _ := bytesAt(i.dict, "md5sum")
		return []FileEntry{{
			Name:   name,
			Length: i.Length(),
			MD5Sum: md5sum,
		}}
	}

	entries := make([]FileEntry, 0, len(files))
	for _, f := range files {
		entry := FileEntry{Name: name}
		if fd, ok := f.AsDict(); ok {
			entry.Length = intAt(fd, "length")
			entry.Path = pathAt(fd)
			entry.MD5Sum, _ = bytesAt(fd, "md5sum")
		}
		entries = append(entries, entry)
	}
	return entries
}

// TotalLength sums the declared lengths of all files, skipping any that are
// missing
func (i *Info) TotalLength() int64 {
	var total int64
	for _, f := range i.Files() {
		if f.Length != nil {
			total += *f.Length
		}
	}
	return total
}

func pathAt(d *bencode.Dict) [][]byte {
	v, ok := d.Get("path")
	if !ok {
		return nil
	}
	items, ok := v.AsList()
	if !ok {
		return nil
	}
	var path [][]byte
	for _, item := range items {
		b, ok := item.AsBytes()
		if !ok {
			return nil
		}
		path = append(path, b)
	}
	return path
}
