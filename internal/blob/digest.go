package blob

import (
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
)

// ComputeDigest computes the canonical (sha256) digest of data from a reader.
// It reads the data incrementally, so it doesn't load the entire file into
// memory.
func ComputeDigest(r io.Reader) (digest.Digest, error) {
	d, err := digest.Canonical.FromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to compute digest: %w", err)
	}
	return d, nil
}

// DigestBytes computes the canonical digest of a byte slice.
func DigestBytes(data []byte) digest.Digest {
	return digest.Canonical.FromBytes(data)
}

// ShortDigest returns the first n hex characters of the digest's encoded
// part, for display.
//
// Example: ShortDigest("sha256:abc123def456...", 8) returns "abc123de"
func ShortDigest(d digest.Digest, n int) string {
	enc := d.Encoded()
	if n <= 0 || n > len(enc) {
		return enc
	}
	return enc[:n]
}

// DefaultShortDigestLength gives 64 bits of the digest, enough to tell
// objects apart in logs.
const DefaultShortDigestLength = 16
