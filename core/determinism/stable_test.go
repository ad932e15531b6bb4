package determinism

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]float64{"probable": 1, "improbable": 0.2, "possible": 0.5}
	assert.Equal(t, []string{"improbable", "possible", "probable"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestHashJSONIsStable(t *testing.T) {
	a, err := HashJSON(map[string]float64{"wifi_signal": 85, "connection": 40})
	require.NoError(t, err)
	b, err := HashJSON(map[string]float64{"connection": 40, "wifi_signal": 85})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a.Hex(), 64)

	c, err := HashJSON(map[string]float64{"connection": 41, "wifi_signal": 85})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = HashJSON(func() {})
	assert.Error(t, err)
}
