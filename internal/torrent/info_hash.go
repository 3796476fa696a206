package torrent

import (
	"crypto/sha1"
	"encoding/hex"
)

type InfoHash [20]byte

func (ih InfoHash) String() string {
	return hex.EncodeToString(ih[:])
}

// GenerateInfoHash hashes the exact encoded bytes of an info dictionary
func GenerateInfoHash(rawInfoDict []byte) InfoHash {
	return InfoHash(sha1.Sum(rawInfoDict))
}
