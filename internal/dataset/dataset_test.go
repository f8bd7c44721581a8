package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroclim/climgen/internal/config"
	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/processor"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Dataset{
		Name:      "era5",
		SourceDir: "/data/era5",
		Grid:      "r720x360",
		Variables: []*config.Variable{
			{Name: "tasmax", SourcePattern: "tasmax_*.nc"},
			{Name: "tasmin", SourcePattern: "tasmin_*.nc"},
			{Name: "tas", Derive: "mean", Inputs: []string{"tasmax", "tasmin"}, Rechunk: true},
			{Name: "pr", SourcePattern: "pr_*.nc", Remap: true},
		},
	}
	ds := FromConfig(cfg)

	t.Run("exposes identity and variables", func(t *testing.T) {
		assert.Equal(t, "era5", ds.Name())
		assert.Equal(t, "/data/era5", ds.SourceDir())
		assert.Equal(t, []format.Variable{"tasmax", "tasmin", "tas", "pr"}, ds.Variables())
	})

	t.Run("assembles one processor per stage of each variable", func(t *testing.T) {
		procs, err := ds.Processors(context.Background())
		require.NoError(t, err)
		// tasmax, tasmin, rechunk-wrapped mean for tas, preprocess + timeseries for pr.
		require.Len(t, procs, 5)

		outputs := make(map[format.Format]bool)
		for _, p := range procs {
			outputs[p.OutputFormat()] = true
		}
		assert.True(t, outputs[format.Format{Variable: "tasmax", Stage: format.StageTimeseries}])
		assert.True(t, outputs[format.Format{Variable: "tas", Stage: format.StageRechunked}])
		assert.True(t, outputs[format.Format{Variable: "pr", Stage: format.StagePreprocessed}])
		assert.True(t, outputs[format.Format{Variable: "pr", Stage: format.StageTimeseries}])
	})

	t.Run("processor set sorts cleanly", func(t *testing.T) {
		procs, err := ds.Processors(context.Background())
		require.NoError(t, err)
		sorted, err := processor.Sort(procs)
		require.NoError(t, err)
		assert.Len(t, sorted, len(procs))
	})

	t.Run("remap without a dataset grid is rejected", func(t *testing.T) {
		bad := FromConfig(&config.Dataset{
			Name:      "era5",
			SourceDir: "/data/era5",
			Variables: []*config.Variable{
				{Name: "pr", SourcePattern: "pr_*.nc", Remap: true},
			},
		})
		_, err := bad.Processors(context.Background())
		assert.ErrorContains(t, err, "declares no grid")
	})
}
