package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes a stable digest of the manifest's declared state: the
// profile plus every requirement constraint, in canonical order. A lockfile
// carrying the same fingerprint was resolved from an identical manifest,
// which lets install runs skip re-resolution when nothing changed.
func (m *Manifest) Fingerprint() string {
	clone := Manifest{Profile: m.Profile, Requirements: append([]Requirement(nil), m.Requirements...)}
	clone.Canonicalize()

	h := xxhash.New()
	_, _ = h.WriteString(string(clone.Profile.Loader))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(clone.Profile.Minecraft)
	_, _ = h.Write([]byte{0})
	for _, r := range clone.Requirements {
		_, _ = h.WriteString(r.Constraint())
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
