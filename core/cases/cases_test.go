package cases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdiag/core/engine"
)

func TestBuiltinCasesMatchExpectations(t *testing.T) {
	e, err := engine.NewBuilder(engine.Config{}).Build()
	require.NoError(t, err)

	for _, c := range Builtin() {
		if c.Expected == "" {
			continue
		}
		t.Run(c.ID, func(t *testing.T) {
			res := e.Diagnose(c.Symptoms)
			require.False(t, res.Failed(), res.Error)
			assert.Equal(t, c.Expected, res.Diagnosis)
			assert.Greater(t, res.Score, 70.0)
		})
	}
}

func TestBuiltinIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Builtin() {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestFind(t *testing.T) {
	c, ok := Find("dns")
	require.True(t, ok)
	assert.Equal(t, 7.0, c.Symptoms.DNSErrors)

	_, ok = Find("nope")
	assert.False(t, ok)
}
