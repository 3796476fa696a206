package file

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChunkSize is how many bytes of a payload file are hashed per read
const ChunkSize = 4096

// Algorithm names a content digest
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
)

// ParseAlgorithm accepts "md5" or "sha256" in any case
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(s)); a {
	case MD5, SHA256:
		return a, nil
	default:
		return "", fmt.Errorf("unsupported checksum algorithm: %q", s)
	}
}

func (a Algorithm) newHash() hash.Hash {
	if a == SHA256 {
		return sha256.New()
	}
	return md5.New()
}

// ChecksumError reports a payload file that could not be hashed
type ChecksumError struct {
	Name string
	Err  error
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum %s: %v", e.Name, e.Err)
}

func (e *ChecksumError) Unwrap() error {
	return e.Err
}

// Checksummer hashes payload files found below a root directory
type Checksummer struct {
	root      string
	algorithm Algorithm
}

// NewChecksummer creates a checksummer for files under root. An empty
// algorithm means MD5.
func NewChecksummer(root string, algorithm Algorithm) *Checksummer {
	if algorithm == "" {
		algorithm = MD5
	}
	return &Checksummer{root: root, algorithm: algorithm}
}

// Algorithm returns the digest in use
func (c *Checksummer) Algorithm() Algorithm {
	return c.algorithm
}

// Sum returns the lower-case hex digest of the file at name, relative to the
// root. The file is read in ChunkSize pieces.
func (c *Checksummer) Sum(name string) (string, error) {
	fullPath, err := SafeJoin(c.root, name)
	if err != nil {
		return "", &ChecksumError{Name: name, Err: err}
	}

	stat, err := os.Stat(fullPath)
	if err != nil {
		return "", &ChecksumError{Name: name, Err: err}
	}
	if !stat.Mode().IsRegular() {
		return "", &ChecksumError{Name: name, Err: errors.New("not a regular file")}
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return "", &ChecksumError{Name: name, Err: err}
	}
	defer f.Close()

	h := c.algorithm.newHash()
	buf := make([]byte, ChunkSize)
	for {
		n, err := f.Read(buf)
		h.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &ChecksumError{Name: name, Err: fmt.Errorf("failed to read: %w", err)}
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// SafeJoin joins name below root and rejects names that would escape it
func SafeJoin(root, name string) (string, error) {
	if name == "" {
		return "", errors.New("empty file name")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute path not allowed: %s", name)
	}
	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes root: %s", name)
	}
	return filepath.Join(root, clean), nil
}
