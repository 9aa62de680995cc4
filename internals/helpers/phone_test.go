package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMsisdn(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0712345678", "254712345678"},
		{"254712345678", "254712345678"},
		{"712345678", "254712345678"},
		{"+254712345678", "254712345678"},
		{"0110123456", "254110123456"},
		{"0712 345 678", "254712345678"},
		{"0712-345-678", "254712345678"},
	}
	for _, tc := range cases {
		got, err := NormalizeMsisdn(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalizeMsisdnRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "12345", "0812345678", "25471234567", "notaphone", "07123456789"} {
		_, err := NormalizeMsisdn(in)
		assert.ErrorIs(t, err, ErrInvalidMsisdn, "input %q", in)
	}
}
