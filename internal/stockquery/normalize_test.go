package stockquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercases and splits on whitespace",
			input:    "99 Speedmart Acacia",
			expected: []string{"99", "speedmart", "acacia"},
		},
		{
			name:     "collapses runs of whitespace",
			input:    "  Oil   Packet \t 1KG ",
			expected: []string{"oil", "packet", "1kg"},
		},
		{
			name:     "keeps punctuation attached to words",
			input:    "Acacia, Nilai",
			expected: []string{"acacia,", "nilai"},
		},
		{
			name:     "collapses duplicate tokens",
			input:    "rice rice RICE",
			expected: []string{"rice"},
		},
		{
			name:     "empty input yields empty set",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only yields empty set",
			input:    "   \t\n ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			assert.Len(t, got, len(tt.expected))
			for _, tok := range tt.expected {
				assert.True(t, got.Contains(tok), "missing token %q", tok)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "99 speedmart acacia, nilai", Canonical("  99  Speedmart\tAcacia, Nilai "))
	assert.Equal(t, "", Canonical("   "))
}

func TestTokenSetOps(t *testing.T) {
	query := Tokens("99 Speedmart Acacia")
	acacia := Tokens("99 Speedmart Acacia Nilai")
	desaJati := Tokens("99 Speedmart Desa Jati Nilai")

	assert.True(t, query.SubsetOf(acacia))
	assert.False(t, query.SubsetOf(desaJati), "acacia token is mandatory")
	assert.Equal(t, 3, query.Overlap(acacia))
	assert.Equal(t, 2, query.Overlap(desaJati))
	assert.True(t, Tokens("").SubsetOf(acacia), "empty set is subset of anything")
}
