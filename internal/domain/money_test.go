package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"100.999", "101.00"},
		{"100.994", "100.99"},
		{"100.995", "101.00"},
		{"-100.999", "-101.00"},
		{"0.005", "0.01"},
		{"42", "42.00"},
		{"-3.5", "-3.50"},
	}

	for _, tc := range cases {
		money, err := ParseMoney(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, money.String(), tc.input)
	}
}

func TestParseMoney_ZeroRejected(t *testing.T) {
	for _, input := range []string{"0", "0.00", "-0.00", "0.004"} {
		_, err := ParseMoney(input)
		require.Error(t, err, input)
		assert.True(t, IsValidation(err, KindInvalidAmount), input)
	}
}

func TestParseMoney_BlankIsRequired(t *testing.T) {
	_, err := ParseMoney("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestParseMoney_InvalidFormat(t *testing.T) {
	_, err := ParseMoney("12,50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount format")
}

func TestMoney_Sign(t *testing.T) {
	income, err := ParseMoney("250.00")
	require.NoError(t, err)
	assert.True(t, income.IsPositive())
	assert.False(t, income.IsNegative())

	expense, err := ParseMoney("-99.95")
	require.NoError(t, err)
	assert.True(t, expense.IsNegative())
}

func TestMoney_Add(t *testing.T) {
	a, err := ParseMoney("10.555")
	require.NoError(t, err)
	b, err := ParseMoney("0.01")
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "10.57", sum.String())
}

func TestMoney_AddToZeroRejected(t *testing.T) {
	a, err := ParseMoney("10.00")
	require.NoError(t, err)
	b, err := ParseMoney("-10.00")
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)
}

func TestMoney_Negate(t *testing.T) {
	money, err := ParseMoney("12.34")
	require.NoError(t, err)

	negated := money.Negate()
	assert.Equal(t, "-12.34", negated.String())
	assert.True(t, negated.IsNegative())
}

func TestNewMoney_FromDecimal(t *testing.T) {
	money, err := NewMoney(decimal.RequireFromString("7.125"))
	require.NoError(t, err)
	assert.Equal(t, "7.13", money.String())
}
