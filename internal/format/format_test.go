package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	t.Run("valid stages parse", func(t *testing.T) {
		for _, s := range []string{"preprocessed", "timeseries", "rechunked"} {
			stage, err := ParseStage(s)
			require.NoError(t, err)
			assert.Equal(t, Stage(s), stage)
		}
	})

	t.Run("unknown stage is rejected", func(t *testing.T) {
		_, err := ParseStage("regridded")
		assert.ErrorContains(t, err, "unknown processing stage")
	})
}

func TestFormatString(t *testing.T) {
	f := Format{Variable: "tas", Stage: StageTimeseries}
	assert.Equal(t, "tas:timeseries", f.String())
}

func TestFormatEquality(t *testing.T) {
	a := Format{Variable: "tas", Stage: StageTimeseries}
	b := Format{Variable: "tas", Stage: StageTimeseries}
	c := Format{Variable: "tas", Stage: StageRechunked}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Formats are used as map keys; equal values must collide.
	m := map[Format]int{a: 1}
	m[b]++
	assert.Equal(t, 2, m[a])
	assert.Len(t, m, 1)
}
