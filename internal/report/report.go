package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"bittorrentparser/internal/torrent"
)

// Summer computes the content digest of a payload file named in a manifest
type Summer interface {
	Sum(name string) (string, error)
}

// FileReport is one manifest entry with its checksum, or the reason there
// is none
type FileReport struct {
	Name     string `json:"name,omitempty"`
	Path     string `json:"path,omitempty"`
	Length   *int64 `json:"length,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	Error    string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Report holds the fields extracted from one torrent file
type Report struct {
	Source       string       `json:"source"`
	CreationDate string       `json:"creation_date,omitempty"`
	CreatedBy    string       `json:"created_by,omitempty"`
	Announce     string       `json:"announce,omitempty"`
	InfoHash     string       `json:"info_hash,omitempty"`
	Files        []FileReport `json:"files"`
}

// Build extracts the report fields from m. Each manifest entry is hashed
// with summer, if one is given; a failure is recorded on that entry only.
func Build(source string, m *torrent.Metainfo, summer Summer) Report {
	r := Report{Source: source, Files: []FileReport{}}

	if ts, ok := m.CreationDate(); ok {
		r.CreationDate = FormatCreationDate(ts)
	}
	if by, ok := m.CreatedBy(); ok {
		r.CreatedBy = display(by)
	}
	if url, ok := m.Announce(); ok {
		r.Announce = display(url)
	}
	if ih, ok := m.InfoHash(); ok {
		r.InfoHash = ih.String()
	}

	for _, entry := range m.Files() {
		fr := FileReport{
			Name:   display(entry.Name),
			Length: entry.Length,
		}

		rel, err := entry.RelPath()
		if err == nil {
			fr.Path = rel
			if summer != nil {
				fr.Checksum, err = summer.Sum(rel)
			}
		}
		if err != nil {
			fr.Err = err
			fr.Error = err.Error()
		}

		r.Files = append(r.Files, fr)
	}

	return r
}

// WriteText writes a human-readable rendering of r
func (r Report) WriteText(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", r.Source)
	fmt.Fprintf(&sb, "   Created:   %s\n", orDash(r.CreationDate))
	fmt.Fprintf(&sb, "   Client:    %s\n", orDash(r.CreatedBy))
	fmt.Fprintf(&sb, "   Tracker:   %s\n", orDash(r.Announce))
	if r.InfoHash != "" {
		fmt.Fprintf(&sb, "   Info hash: %s\n", r.InfoHash)
	}
	fmt.Fprintf(&sb, "   Files:     %d\n", len(r.Files))

	for _, f := range r.Files {
		name := f.Path
		if name == "" {
			name = orDash(f.Name)
		}
		length := "?"
		if f.Length != nil {
			length = strconv.FormatInt(*f.Length, 10)
		}
		switch {
		case f.Error != "":
			fmt.Fprintf(&sb, "     - %s (%s bytes) error: %s\n", name, length, f.Error)
		case f.Checksum != "":
			fmt.Fprintf(&sb, "     - %s (%s bytes) %s\n", name, length, f.Checksum)
		default:
			fmt.Fprintf(&sb, "     - %s (%s bytes)\n", name, length)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// display turns a byte string into printable text, quoting it when it is
// not valid UTF-8
func display(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strconv.Quote(string(b))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
