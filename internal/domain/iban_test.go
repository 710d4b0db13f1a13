package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIban_Valid(t *testing.T) {
	valid := []string{
		"PL61109010140000071219812874",
		"DE89370400440532013000",
		"GB29NWBK60161331926819",
		"FR1420041010050500013M02606",
	}

	for _, value := range valid {
		iban, err := NewIban(value)
		require.NoError(t, err, value)
		assert.Equal(t, value, iban.String())
	}
}

func TestNewIban_Normalizes(t *testing.T) {
	iban, err := NewIban("  pl61 1090 1014 0000 0712 1981 2874 ")
	require.NoError(t, err)
	assert.Equal(t, "PL61109010140000071219812874", iban.String())
}

func TestNewIban_InvalidChecksum(t *testing.T) {
	_, err := NewIban("PL00109010140000071219812874")
	require.Error(t, err)
	assert.True(t, IsValidation(err, KindInvalidIban))
	assert.Contains(t, err.Error(), "checksum")
}

func TestNewIban_Blank(t *testing.T) {
	_, err := NewIban("")
	require.Error(t, err)
	assert.True(t, IsValidation(err, KindInvalidIban))

	_, err = NewIban("   ")
	assert.Error(t, err)
}

func TestNewIban_Length(t *testing.T) {
	_, err := NewIban("PL6110901014")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 15 and 34")

	_, err = NewIban("PL61" + strings.Repeat("1", 35))
	assert.Error(t, err)
}

func TestNewIban_Format(t *testing.T) {
	cases := []string{
		"611090101400000712198128PL",  // country code not leading
		"PLAB109010140000071219812874", // letters where check digits belong
		"PL61-10901014000007121981287", // invalid character
	}

	for _, value := range cases {
		_, err := NewIban(value)
		assert.Error(t, err, value)
	}
}

func TestIsValidIban(t *testing.T) {
	assert.True(t, IsValidIban("PL61109010140000071219812874"))
	assert.False(t, IsValidIban("PL00109010140000071219812874"))
	assert.False(t, IsValidIban(""))
}
