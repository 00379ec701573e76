package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-passphrase", hash)

	assert.True(t, CheckPasswordHash("s3cret-passphrase", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret-passphrase", "not-a-hash"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "berlin-marathon-2026", Slugify("Berlin Marathon 2026"))
	assert.Equal(t, "hotel-offer", Slugify("  Hotel / Offer!  "))
	assert.Equal(t, "file", Slugify("???"))
	assert.Equal(t, "file", Slugify(""))

	long := Slugify("a very long event name that keeps going and going and going and going and going")
	assert.LessOrEqual(t, len(long), 60)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "920.50 EUR", FormatMoney(920.5, "eur"))
	assert.Equal(t, "700.00 USD", FormatMoney(700, "USD"))
}
