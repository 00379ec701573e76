package quotescan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedType(t *testing.T) {
	assert.True(t, IsSupportedType("image/jpeg"))
	assert.True(t, IsSupportedType("image/png"))
	assert.True(t, IsSupportedType("image/webp"))
	assert.False(t, IsSupportedType("application/pdf"))
	assert.False(t, IsSupportedType(""))
}

func TestDecodeScanResultPlainJSON(t *testing.T) {
	raw := `{"agency_name":"RunTravel","package_title":"Berlin weekend","total_price":920.5,"currency":"eur","valid_until":"2026-06-30","summary":"3 nights"}`

	scanned, err := decodeScanResult(raw)
	require.NoError(t, err)

	assert.Equal(t, "RunTravel", scanned.AgencyName)
	assert.Equal(t, 920.5, scanned.TotalPrice)
	assert.Equal(t, "EUR", scanned.Currency, "currency is normalized to upper case")
	assert.Equal(t, "2026-06-30", scanned.ValidUntil)
}

func TestDecodeScanResultStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"agency_name\":\"RunTravel\",\"total_price\":700}\n```"

	scanned, err := decodeScanResult(raw)
	require.NoError(t, err)
	assert.Equal(t, "RunTravel", scanned.AgencyName)
	assert.Equal(t, float64(700), scanned.TotalPrice)
}

func TestDecodeScanResultRejectsGarbage(t *testing.T) {
	_, err := decodeScanResult("the image shows a quote for 700 euros")
	assert.Error(t, err)
}
