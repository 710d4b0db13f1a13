package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeChecksum_Deterministic(t *testing.T) {
	content := []byte("iban,date,currency,category,amount\n")

	first, err := ComputeChecksum(content)
	require.NoError(t, err)

	second, err := ComputeChecksum(content)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeChecksum_Format(t *testing.T) {
	checksum, err := ComputeChecksum([]byte("some content"))
	require.NoError(t, err)

	assert.Len(t, checksum.String(), 64)
	assert.Equal(t, strings.ToLower(checksum.String()), checksum.String())
}

func TestComputeChecksum_DiffersForDifferentContent(t *testing.T) {
	first, err := ComputeChecksum([]byte("content a"))
	require.NoError(t, err)

	second, err := ComputeChecksum([]byte("content b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestComputeChecksum_SingleByteChangesDigest(t *testing.T) {
	first, err := ComputeChecksum([]byte("content"))
	require.NoError(t, err)

	second, err := ComputeChecksum([]byte("contenu"))
	require.NoError(t, err)

	assert.NotEqual(t, first.String(), second.String())
}

func TestComputeChecksum_EmptyContent(t *testing.T) {
	_, err := ComputeChecksum(nil)
	assert.True(t, IsValidation(err, KindInvalidInput))

	_, err = ComputeChecksum([]byte{})
	assert.Error(t, err)
}

func TestChecksumFromString(t *testing.T) {
	computed, err := ComputeChecksum([]byte("content"))
	require.NoError(t, err)

	restored, err := ChecksumFromString(computed.String())
	require.NoError(t, err)
	assert.Equal(t, computed, restored)

	_, err = ChecksumFromString("abc")
	assert.Error(t, err)
}
