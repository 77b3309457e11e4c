package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_MatchesKeywords(t *testing.T) {
	s, ok := Suggest("Beli tepung terigu dan gula pasir")

	require.True(t, ok)
	assert.Equal(t, "Bahan Baku", s.Category)
	assert.InDelta(t, 1.0, s.Confidence, 0.001)
}

func TestSuggest_MixedKeywordsPickHighestShare(t *testing.T) {
	s, ok := Suggest("bensin untuk kirim pesanan")

	require.True(t, ok)
	assert.Equal(t, "Transportasi", s.Category)
	assert.InDelta(t, 2.0/3.0, s.Confidence, 0.001)
}

func TestSuggest_NoMatch(t *testing.T) {
	_, ok := Suggest("xyz abc")
	assert.False(t, ok)
}
