package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainModule prefixes module digests. The version suffix allows the
// encoding to change without colliding with old digests.
const DomainModule = "asdlc/module/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest computes a content hash of the resolved module. Two schema files
// that resolve to the same IR have the same digest regardless of layout,
// comments or declaration spacing.
func Digest(m *Module) (string, error) {
	canonical, err := MarshalCanonical(Encode(m))
	if err != nil {
		return "", fmt.Errorf("Digest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainModule, canonical), nil
}

// MustDigest is like Digest but panics on error.
// Use only in tests or when the module is known to be valid.
func MustDigest(m *Module) string {
	d, err := Digest(m)
	if err != nil {
		panic(err)
	}
	return d
}
