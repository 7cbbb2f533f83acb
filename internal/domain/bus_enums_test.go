package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTier_Label(t *testing.T) {
	tests := map[string]string{
		"x1":      "Normal",
		"x1.5":    "Semi-Luxury",
		"x2":      "Luxury",
		"x4":      "Express",
		"X2":      "Luxury",
		"unknown": "unknown",
	}
	for code, label := range tests {
		assert.Equal(t, label, ParseTier(code).Label(), code)
	}

	assert.Equal(t, TierOther, ParseTier("unknown").Kind())
	assert.False(t, ParseTier("").IsSet())
}

func TestSeating_LabelAndLevel(t *testing.T) {
	assert.Equal(t, "Almost full", ParseSeating("almost FULL").Label())
	assert.Equal(t, 2, ParseSeating("Almost full").Level())
	assert.Equal(t, 4, ParseSeating("Loaded").Level())

	standing := ParseSeating("Standing only")
	assert.Equal(t, SeatingOther, standing.Kind())
	assert.Equal(t, "Standing only", standing.Label())
	assert.Equal(t, 0, standing.Level())
}

func TestProvider_Label(t *testing.T) {
	assert.Equal(t, "SLTB", ParseProvider("sltb").Label())
	assert.Equal(t, ProviderPrivate, ParseProvider("Private").Kind())
	assert.Equal(t, ProviderOther, ParseProvider("ctb").Kind())
	assert.Equal(t, "CTB", ParseProvider("ctb").Label())
}

func TestEnums_TextRoundTripInJSON(t *testing.T) {
	bus := Bus{Type: ParseProvider("private"), Tier: ParseTier("x1.5")}

	data, err := json.Marshal(bus)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tier":"x1.5"`)

	var decoded Bus
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TierSemiLuxury, decoded.Tier.Kind())
	assert.Equal(t, ProviderPrivate, decoded.Type.Kind())
}

func TestEnums_SQLValues(t *testing.T) {
	v, err := Tier{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var s Seating
	require.NoError(t, s.Scan([]byte("Full")))
	assert.Equal(t, SeatingFull, s.Kind())

	require.NoError(t, s.Scan(nil))
	assert.False(t, s.IsSet())

	assert.Error(t, s.Scan(42))
}
