package isbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"isbn10", "0307474720", true},
		{"isbn13", "9780307474728", true},
		{"isbn10 with hyphens", "0-306-40615-2", true},
		{"isbn13 with hyphens and spaces", "978-0-306 40615-7", true},
		{"isbn10 with X check digit", "080442957X", true},
		{"isbn10 lowercase x rejected", "080442957x", false},
		{"isbn10 bad checksum", "0307474721", false},
		{"isbn13 bad checksum", "9780307474729", false},
		{"isbn10 letter in body", "03074A4720", false},
		{"isbn13 X not allowed", "978030747472X", false},
		{"empty", "", false},
		{"too short", "123456789", false},
		{"eleven digits", "12345678901", false},
		{"fourteen digits", "97803074747280", false},
		{"only separators", "- - -", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}

func TestValid_SingleDigitCorruption(t *testing.T) {
	for _, good := range []string{"0307474720", "9780307474728"} {
		assert.True(t, Valid(good))
		for i := 0; i < len(good); i++ {
			for d := byte('0'); d <= '9'; d++ {
				if good[i] == d {
					continue
				}
				bad := []byte(good)
				bad[i] = d
				assert.False(t, Valid(string(bad)), "corrupted %s at %d to %c", good, i, d)
			}
		}
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "9780306406157", Clean(" 978-0-306 40615-7 "))
	assert.Equal(t, "", Clean(" - "))
}
