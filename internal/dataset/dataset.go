// Package dataset bridges the plan model and the processor layer: it
// exposes each configured climate data product as a Dataset that knows
// which processors are needed to produce its variables.
package dataset

import (
	"context"
	"fmt"

	"github.com/hydroclim/climgen/internal/config"
	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/format"
	"github.com/hydroclim/climgen/internal/processor"
)

// Dataset exposes one climate data product to the orchestrator: its
// identity, the variables it must produce, and the processors that produce
// them. The processor set is returned unordered; the processor sorter
// establishes execution order.
type Dataset interface {
	Name() string
	SourceDir() string
	Variables() []format.Variable
	Processors(ctx context.Context) ([]processor.Processor, error)
}

// configDataset is the plan-backed Dataset implementation.
type configDataset struct {
	cfg *config.Dataset
}

// FromConfig wraps a plan dataset into a Dataset.
func FromConfig(cfg *config.Dataset) Dataset {
	return &configDataset{cfg: cfg}
}

func (d *configDataset) Name() string {
	return d.cfg.Name
}

func (d *configDataset) SourceDir() string {
	return d.cfg.SourceDir
}

func (d *configDataset) Variables() []format.Variable {
	vars := make([]format.Variable, 0, len(d.cfg.Variables))
	for _, v := range d.cfg.Variables {
		vars = append(vars, format.Variable(v.Name))
	}
	return vars
}

// Processors assembles the processor set for the dataset's variables: a
// preprocess processor when a variable requests a remap, a timeseries or
// mean processor for the variable itself, and a rechunk decorator when the
// plan asks for a rechunked artifact.
func (d *configDataset) Processors(ctx context.Context) ([]processor.Processor, error) {
	logger := ctxlog.FromContext(ctx)

	var procs []processor.Processor
	for _, spec := range d.cfg.Variables {
		v := format.Variable(spec.Name)

		var p processor.Processor
		switch {
		case spec.Derive == "mean":
			inputs := make([]format.Variable, 0, len(spec.Inputs))
			for _, in := range spec.Inputs {
				inputs = append(inputs, format.Variable(in))
			}
			p = processor.NewMean(v, inputs)
		default:
			if spec.Remap {
				if d.cfg.Grid == "" {
					return nil, fmt.Errorf("dataset %q: variable %q requests a remap but the dataset declares no grid",
						d.cfg.Name, spec.Name)
				}
				procs = append(procs, processor.NewPreprocess(v, spec.SourcePattern, d.cfg.Grid))
			}
			p = processor.NewTimeseries(v, spec.SourcePattern, spec.Unit, spec.ConvertTo, spec.Remap)
		}

		if spec.Rechunk {
			p = processor.WithRechunk(p)
		}
		procs = append(procs, p)
	}
	logger.Debug("Processor set assembled.", "dataset", d.cfg.Name, "count", len(procs))
	return procs, nil
}
