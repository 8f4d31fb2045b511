package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsEmptyText(t *testing.T) {
	c := Claim{Text: "", Tier: TierPrimary}
	require.Error(t, c.Validate())
}

func TestValidateRejectsUnknownTier(t *testing.T) {
	c := Claim{Text: "vaccines cause autism", Tier: Tier("bogus")}
	require.Error(t, c.Validate())
}

func TestIsShortBoundary(t *testing.T) {
	assert.True(t, Claim{Text: "short"}.IsShort())
	assert.False(t, Claim{Text: "exactly8"}.IsShort())
	assert.False(t, Claim{Text: "this is long enough"}.IsShort())
}

func TestSortOrdersByTierThenPriority(t *testing.T) {
	claims := []Claim{
		{Text: "c", Tier: TierTertiary, Priority: 0},
		{Text: "b", Tier: TierPrimary, Priority: 2},
		{Text: "a", Tier: TierPrimary, Priority: 1},
		{Text: "d", Tier: TierSecondary, Priority: 0},
	}
	Sort(claims)
	require.Len(t, claims, 4)
	assert.Equal(t, "a", claims[0].Text)
	assert.Equal(t, "b", claims[1].Text)
	assert.Equal(t, "d", claims[2].Text)
	assert.Equal(t, "c", claims[3].Text)
}
