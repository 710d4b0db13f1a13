package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

const checksumHexLength = 64

// FileChecksum is the SHA-256 digest of uploaded file content, used as the
// deduplication key. Identical bytes always produce the same value.
type FileChecksum struct {
	value string
}

func ComputeChecksum(content []byte) (FileChecksum, error) {
	if len(content) == 0 {
		return FileChecksum{}, newValidationError(KindInvalidInput, "content cannot be empty")
	}

	sum := sha256.Sum256(content)
	return FileChecksum{value: hex.EncodeToString(sum[:])}, nil
}

// ChecksumFromString reconstitutes a previously computed checksum.
func ChecksumFromString(value string) (FileChecksum, error) {
	if len(value) != checksumHexLength {
		return FileChecksum{}, newValidationError(KindInvalidInput, "invalid checksum length: %d", len(value))
	}
	return FileChecksum{value: value}, nil
}

func (c FileChecksum) String() string {
	return c.value
}

func (c FileChecksum) IsZero() bool {
	return c.value == ""
}
