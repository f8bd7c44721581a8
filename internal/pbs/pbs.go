// Package pbs formats the resource directives placed at the top of every
// generated job script. It owns no submission logic; the orchestrator emits
// the qsub statements.
package pbs

import (
	"fmt"
	"os"
	"strconv"
)

// Options are the scheduler resource settings applied to every generated
// job script. Zero values fall back to the defaults in OptionsFromEnv.
type Options struct {
	Queue    string
	Account  string
	Walltime string
	NCPUs    int
	Mem      string
}

// OptionsFromEnv returns Options seeded from PBS_* environment variables
// with sensible cluster defaults. The plan's pbs block, when present,
// overrides these via Merge.
func OptionsFromEnv() Options {
	o := Options{
		Queue:    envOr("PBS_QUEUE", "normal"),
		Account:  os.Getenv("PBS_ACCOUNT"),
		Walltime: envOr("PBS_WALLTIME", "04:00:00"),
		NCPUs:    4,
		Mem:      envOr("PBS_MEM", "16gb"),
	}
	if v := os.Getenv("PBS_NCPUS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			o.NCPUs = n
		}
	}
	return o
}

// Merge overlays non-zero fields of other onto o and returns the result.
func (o Options) Merge(other Options) Options {
	if other.Queue != "" {
		o.Queue = other.Queue
	}
	if other.Account != "" {
		o.Account = other.Account
	}
	if other.Walltime != "" {
		o.Walltime = other.Walltime
	}
	if other.NCPUs > 0 {
		o.NCPUs = other.NCPUs
	}
	if other.Mem != "" {
		o.Mem = other.Mem
	}
	return o
}

// Directives renders the #PBS header lines for a job with the given name.
func (o Options) Directives(jobName string) []string {
	lines := []string{
		"#PBS -N " + jobName,
		"#PBS -q " + o.Queue,
	}
	if o.Account != "" {
		lines = append(lines, "#PBS -A "+o.Account)
	}
	lines = append(lines,
		"#PBS -l walltime="+o.Walltime,
		fmt.Sprintf("#PBS -l select=1:ncpus=%d:mem=%s", o.NCPUs, o.Mem),
		"#PBS -j oe",
	)
	return lines
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
