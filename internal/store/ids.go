package store

import (
	"crypto/rand"
	"encoding/base32"
)

// NewOpaqueID returns A<suffix> where suffix is 8 chars of base32 (no
// padding). The A prefix marks an anonymous (unlinked) identity; 8 chars of
// base32 ~= 40 bits of space, plenty for per-session ids.
func NewOpaqueID() (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "A" + enc.EncodeToString(b[:]), nil
}
