package processor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/job"
	"github.com/hydroclim/climgen/internal/paths"
	"github.com/hydroclim/climgen/internal/pbs"
	"github.com/hydroclim/climgen/internal/scripts"
	"github.com/hydroclim/climgen/internal/units"
)

type fakeDataset struct {
	name      string
	sourceDir string
}

func (d *fakeDataset) Name() string      { return d.name }
func (d *fakeDataset) SourceDir() string { return d.sourceDir }

func newTestContext(t *testing.T) *Context {
	t.Helper()
	base := t.TempDir()
	opts := pbs.Options{Queue: "normal", Walltime: "01:00:00", NCPUs: 1, Mem: "4gb"}
	return &Context{
		Registry: job.NewRegistry(),
		Paths:    paths.NewManager(filepath.Join(base, "work"), filepath.Join(base, "out")),
		Units:    units.DefaultTable(),
		Scripts:  scripts.NewWriter(filepath.Join(base, "scripts"), opts),
	}
}

func TestTimeseriesCreateJobs(t *testing.T) {
	ds := &fakeDataset{name: "era5", sourceDir: "/data/era5"}

	t.Run("merges raw sources into one job", func(t *testing.T) {
		jc := newTestContext(t)
		p := NewTimeseries("tas", "tas_*.nc", "", "", false)

		jobs, err := p.CreateJobs(context.Background(), ds, jc)
		require.NoError(t, err)
		require.Len(t, jobs, 1)

		j := jobs[0]
		assert.Equal(t, "era5_tas_timeseries", j.Name)
		assert.Equal(t, format.Format{Variable: "tas", Stage: format.StageTimeseries}, j.Output)
		assert.Empty(t, j.Dependencies)

		content, err := os.ReadFile(j.ScriptPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "cdo -O -mergetime '/data/era5/tas_*.nc'")
		assert.Contains(t, string(content), "#PBS -N era5_tas_timeseries")
	})

	t.Run("chains the unit conversion operator", func(t *testing.T) {
		jc := newTestContext(t)
		p := NewTimeseries("tas", "tas_*.nc", "K", "degC", false)

		jobs, err := p.CreateJobs(context.Background(), ds, jc)
		require.NoError(t, err)

		content, err := os.ReadFile(jobs[0].ScriptPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "cdo -O -subc,273.15 -mergetime")
	})

	t.Run("unsupported conversion fails", func(t *testing.T) {
		jc := newTestContext(t)
		p := NewTimeseries("tas", "tas_*.nc", "K", "mm day-1", false)

		_, err := p.CreateJobs(context.Background(), ds, jc)
		assert.ErrorContains(t, err, "unsupported unit conversion")
	})

	t.Run("reads the preprocessed artifact when one exists", func(t *testing.T) {
		jc := newTestContext(t)
		upstream := &job.Job{
			Name:       "era5_tas_preprocessed",
			Output:     format.Format{Variable: "tas", Stage: format.StagePreprocessed},
			OutputPath: "/work/era5_tas_preprocessed.nc",
		}
		jc.Registry.Add(upstream)

		p := NewTimeseries("tas", "tas_*.nc", "", "", true)
		jobs, err := p.CreateJobs(context.Background(), ds, jc)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		require.Len(t, jobs[0].Dependencies, 1)
		assert.Same(t, upstream, jobs[0].Dependencies[0])

		content, err := os.ReadFile(jobs[0].ScriptPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), upstream.OutputPath)
	})

	t.Run("unregistered preprocess dependency is fatal", func(t *testing.T) {
		jc := newTestContext(t)
		p := NewTimeseries("tas", "tas_*.nc", "", "", true)

		_, err := p.CreateJobs(context.Background(), ds, jc)
		var unresolved *job.UnresolvedDependencyError
		require.ErrorAs(t, err, &unresolved)
	})
}

func TestPreprocessCreateJobs(t *testing.T) {
	ds := &fakeDataset{name: "era5", sourceDir: "/data/era5"}
	jc := newTestContext(t)
	p := NewPreprocess("tas", "tas_*.nc", "r720x360")

	assert.Equal(t, format.Format{Variable: "tas", Stage: format.StagePreprocessed}, p.OutputFormat())
	assert.Empty(t, p.Dependencies())

	jobs, err := p.CreateJobs(context.Background(), ds, jc)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	content, err := os.ReadFile(jobs[0].ScriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "cdo -O remapbil,r720x360 -mergetime '/data/era5/tas_*.nc'")
}

func TestMeanCreateJobs(t *testing.T) {
	ds := &fakeDataset{name: "era5", sourceDir: "/data/era5"}

	t.Run("depends on every input timeseries", func(t *testing.T) {
		jc := newTestContext(t)
		tasmax := &job.Job{
			Name:       "era5_tasmax_timeseries",
			Output:     format.Format{Variable: "tasmax", Stage: format.StageTimeseries},
			OutputPath: "/out/era5_tasmax_timeseries.nc",
		}
		tasmin := &job.Job{
			Name:       "era5_tasmin_timeseries",
			Output:     format.Format{Variable: "tasmin", Stage: format.StageTimeseries},
			OutputPath: "/out/era5_tasmin_timeseries.nc",
		}
		jc.Registry.Add(tasmax, tasmin)

		p := NewMean("tas", []format.Variable{"tasmax", "tasmin"})
		jobs, err := p.CreateJobs(context.Background(), ds, jc)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, []*job.Job{tasmax, tasmin}, jobs[0].Dependencies)

		content, err := os.ReadFile(jobs[0].ScriptPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "cdo -O ensmean /out/era5_tasmax_timeseries.nc /out/era5_tasmin_timeseries.nc")
	})

	t.Run("missing input job is fatal", func(t *testing.T) {
		jc := newTestContext(t)
		p := NewMean("tas", []format.Variable{"tasmax", "tasmin"})

		_, err := p.CreateJobs(context.Background(), ds, jc)
		var unresolved *job.UnresolvedDependencyError
		require.ErrorAs(t, err, &unresolved)
	})
}

func TestRechunkDecorator(t *testing.T) {
	ds := &fakeDataset{name: "era5", sourceDir: "/data/era5"}
	inner := NewTimeseries("tas", "tas_*.nc", "", "", false)
	p := WithRechunk(inner)

	t.Run("delegates variable and dependencies to the inner processor", func(t *testing.T) {
		assert.Equal(t, inner.TargetVariable(), p.TargetVariable())
		assert.Equal(t, inner.Dependencies(), p.Dependencies())
	})

	t.Run("reports the rechunked output and folds the inner output into intermediates", func(t *testing.T) {
		assert.Equal(t, format.Format{Variable: "tas", Stage: format.StageRechunked}, p.OutputFormat())
		assert.Contains(t, p.IntermediateOutputs(), inner.OutputFormat())
	})

	t.Run("appends a rechunk job depending on the inner job", func(t *testing.T) {
		jc := newTestContext(t)
		jobs, err := p.CreateJobs(context.Background(), ds, jc)
		require.NoError(t, err)
		require.Len(t, jobs, 2)

		innerJob, rechunkJob := jobs[0], jobs[1]
		assert.Equal(t, inner.OutputFormat(), innerJob.Output)
		assert.Equal(t, p.OutputFormat(), rechunkJob.Output)
		require.Len(t, rechunkJob.Dependencies, 1)
		assert.Same(t, innerJob, rechunkJob.Dependencies[0])

		content, err := os.ReadFile(rechunkJob.ScriptPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "ncks -O -4")
		assert.Contains(t, string(content), innerJob.OutputPath)
	})
}
