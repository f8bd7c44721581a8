// Package paths centralizes the file naming conventions for generated
// artifacts: where each stage of a variable lands on disk and how time
// ranges embedded in source filenames carry over into artifact names.
package paths

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/hydroclim/climgen/internal/format"
)

// Manager constructs artifact and source paths for one generation run.
// Preprocessed intermediates land in the work directory so the cleanup job
// can remove them; timeseries and rechunked artifacts land in the output
// directory.
type Manager struct {
	workDir string
	outDir  string
}

// NewManager returns a Manager rooted at the given work and output directories.
func NewManager(workDir, outDir string) *Manager {
	return &Manager{workDir: workDir, outDir: outDir}
}

// WorkDir returns the directory holding intermediate artifacts.
func (m *Manager) WorkDir() string {
	return m.workDir
}

// ArtifactPath returns the full path of the artifact a dataset produces for
// a variable at a stage, optionally carrying a time range in the name.
func (m *Manager) ArtifactPath(dataset string, v format.Variable, stage format.Stage, tr *TimeRange) string {
	name := fmt.Sprintf("%s_%s_%s", dataset, v, stage)
	if tr != nil {
		name = fmt.Sprintf("%s_%s", name, tr)
	}
	dir := m.outDir
	if stage == format.StagePreprocessed {
		dir = m.workDir
	}
	return filepath.Join(dir, name+".nc")
}

// SourceGlob joins a dataset's source directory with a variable's file pattern.
func (m *Manager) SourceGlob(sourceDir, pattern string) string {
	return filepath.Join(sourceDir, pattern)
}

// TimeRange is the inclusive YYYYMM span covered by a set of source files.
type TimeRange struct {
	Start string
	End   string
}

func (t TimeRange) String() string {
	return t.Start + "-" + t.End
}

var rangeRe = regexp.MustCompile(`(\d{6})-(\d{6})`)

// RangeFromFiles derives the overall time range covered by the given source
// filenames, looking for YYYYMM-YYYYMM segments. Files without such a
// segment are ignored; if none carry one, ok is false and artifact names
// stay range-free.
func RangeFromFiles(files []string) (TimeRange, bool) {
	var starts, ends []string
	for _, f := range files {
		if m := rangeRe.FindStringSubmatch(filepath.Base(f)); m != nil {
			starts = append(starts, m[1])
			ends = append(ends, m[2])
		}
	}
	if len(starts) == 0 {
		return TimeRange{}, false
	}
	sort.Strings(starts)
	sort.Strings(ends)
	return TimeRange{Start: starts[0], End: ends[len(ends)-1]}, true
}
