package words_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/words"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Zero"},
		{"1", "One"},
		{"13", "Thirteen"},
		{"20", "Twenty"},
		{"45", "Forty Five"},
		{"100", "One Hundred"},
		{"101", "One Hundred One"},
		{"999", "Nine Hundred Ninety Nine"},
		{"1000", "One Thousand"},
		{"2180", "Two Thousand One Hundred Eighty"},
		{"99999", "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{"100000", "One Lakh"},
		{"1250000", "Twelve Lakh Fifty Thousand"},
		{"10000000", "One Crore"},
		{"123456789", "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine"},
		{"1000000000", "One Hundred Crore"},
		{"10.5", "Ten and Fifty Paise"},
		{"0.75", "Zero and Seventy Five Paise"},
		{"152.54", "One Hundred Fifty Two and Fifty Four Paise"},
		{"99.999", "One Hundred"},
		{"5.001", "Five"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := words.ToWords(decimal.RequireFromString(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWords_BeyondInt64(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100000000000000000", "One Thousand Crore Crore"},
		{"100000000000000000.5", "One Thousand Crore Crore and Fifty Paise"},
		{"12345678901234567890", "One Lakh Twenty Three Thousand Four Hundred Fifty Six Crore " +
			"Seventy Eight Lakh Ninety Thousand One Hundred Twenty Three Crore " +
			"Forty Five Lakh Sixty Seven Thousand Eight Hundred Ninety"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got string
			var err error
			require.NotPanics(t, func() {
				got, err = words.ToWords(decimal.RequireFromString(tt.in))
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWords_Negative(t *testing.T) {
	_, err := words.ToWords(decimal.RequireFromString("-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestPhrase(t *testing.T) {
	got, err := words.Phrase(decimal.NewFromInt(2180))
	require.NoError(t, err)
	assert.Equal(t, "Rupees Two Thousand One Hundred Eighty Only", got)

	c := words.Converter{MinorUnit: "Cents"}
	got, err = c.Phrase(decimal.RequireFromString("1.25"))
	require.NoError(t, err)
	assert.Equal(t, "One and Twenty Five Cents Only", got)

	_, err = words.Phrase(decimal.RequireFromString("-0.5"))
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}
