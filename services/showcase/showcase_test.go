package showcase

import (
	"testing"

	"runoot/models/eventrequest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(id uint, price float64, recommended bool) eventrequest.Quote {
	return eventrequest.Quote{ID: id, TotalPrice: price, IsRecommended: recommended}
}

func TestSelectEmpty(t *testing.T) {
	assert.Nil(t, Select(nil))
	assert.Nil(t, Select([]eventrequest.Quote{}))
}

func TestSelectSortsByPriceAndLabelsTiers(t *testing.T) {
	quotes := []eventrequest.Quote{
		quote(1, 900, false),
		quote(2, 600, false),
		quote(3, 1200, false),
	}

	entries := Select(quotes)
	require.Len(t, entries, 3)

	assert.Equal(t, uint(2), entries[0].Quote.ID)
	assert.Equal(t, TierBudget, entries[0].Tier)
	assert.Equal(t, uint(1), entries[1].Quote.ID)
	assert.Equal(t, TierBalanced, entries[1].Tier)
	assert.Equal(t, uint(3), entries[2].Quote.ID)
	assert.Equal(t, TierPremium, entries[2].Tier)
}

func TestSelectRecommendedTakesOverThePool(t *testing.T) {
	quotes := []eventrequest.Quote{
		quote(1, 500, false),
		quote(2, 1500, true),
		quote(3, 700, false),
	}

	entries := Select(quotes)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].Quote.ID)
	assert.Equal(t, TierBest, entries[0].Tier)
}

func TestSelectCapsAtThree(t *testing.T) {
	quotes := []eventrequest.Quote{
		quote(1, 400, false),
		quote(2, 300, false),
		quote(3, 600, false),
		quote(4, 500, false),
		quote(5, 200, false),
	}

	entries := Select(quotes)
	require.Len(t, entries, 3)

	// The three cheapest, ascending
	assert.Equal(t, uint(5), entries[0].Quote.ID)
	assert.Equal(t, uint(2), entries[1].Quote.ID)
	assert.Equal(t, uint(1), entries[2].Quote.ID)
	assert.Equal(t, TierBudget, entries[0].Tier)
	assert.Equal(t, TierBalanced, entries[1].Tier)
	assert.Equal(t, TierPremium, entries[2].Tier)
}

func TestSelectTwoQuotesSkipBalanced(t *testing.T) {
	entries := Select([]eventrequest.Quote{
		quote(1, 800, false),
		quote(2, 400, false),
	})
	require.Len(t, entries, 2)
	assert.Equal(t, TierBudget, entries[0].Tier)
	assert.Equal(t, TierPremium, entries[1].Tier)
}

func TestSelectMultipleRecommended(t *testing.T) {
	quotes := []eventrequest.Quote{
		quote(1, 500, true),
		quote(2, 1500, true),
		quote(3, 700, false),
		quote(4, 900, true),
		quote(5, 650, true),
	}

	entries := Select(quotes)
	require.Len(t, entries, 3)

	// Only recommended quotes compete, cheapest three win
	assert.Equal(t, uint(1), entries[0].Quote.ID)
	assert.Equal(t, uint(5), entries[1].Quote.ID)
	assert.Equal(t, uint(4), entries[2].Quote.ID)
}

func TestSelectIsStableForEqualPrices(t *testing.T) {
	quotes := []eventrequest.Quote{
		quote(1, 500, false),
		quote(2, 500, false),
		quote(3, 500, false),
	}

	first := Select(quotes)
	second := Select(quotes)
	require.Len(t, first, 3)

	for i := range first {
		assert.Equal(t, first[i].Quote.ID, second[i].Quote.ID)
		assert.Equal(t, first[i].Tier, second[i].Tier)
	}
	// Input order preserved on ties
	assert.Equal(t, uint(1), first[0].Quote.ID)
	assert.Equal(t, uint(2), first[1].Quote.ID)
	assert.Equal(t, uint(3), first[2].Quote.ID)
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	quotes := []eventrequest.Quote{
		quote(1, 900, false),
		quote(2, 600, false),
	}

	Select(quotes)

	assert.Equal(t, uint(1), quotes[0].ID)
	assert.Equal(t, uint(2), quotes[1].ID)
}
