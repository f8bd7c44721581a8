package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/hydroclim/climgen/internal/config"
	"github.com/hydroclim/climgen/internal/schema"
)

// translateDataset converts the HCL-specific dataset schema into the
// agnostic model.
func (l *Loader) translateDataset(s *schema.Dataset) (*config.Dataset, error) {
	ds := &config.Dataset{
		Name:      s.Name,
		SourceDir: s.SourceDir,
		Grid:      s.Grid,
	}
	for _, v := range s.Variables {
		inputs, err := l.evalInputs(v)
		if err != nil {
			return nil, fmt.Errorf("dataset %q, variable %q: %w", s.Name, v.Name, err)
		}
		ds.Variables = append(ds.Variables, &config.Variable{
			Name:          v.Name,
			SourcePattern: v.SourcePattern,
			Unit:          v.Unit,
			ConvertTo:     v.ConvertTo,
			Remap:         v.Remap,
			Derive:        v.Derive,
			Inputs:        inputs,
			Rechunk:       v.Rechunk,
		})
	}
	return ds, nil
}

// translatePBS converts the HCL-specific pbs schema into the agnostic model.
func (l *Loader) translatePBS(s *schema.PBS) *config.PBS {
	return &config.PBS{
		Queue:    s.Queue,
		Account:  s.Account,
		Walltime: s.Walltime,
		NCPUs:    s.NCPUs,
		Mem:      s.Mem,
	}
}

// evalInputs evaluates a variable's `inputs` attribute into a string list.
// Plan files carry only literal values, so evaluation runs without an eval
// context.
func (l *Loader) evalInputs(v *schema.Variable) ([]string, error) {
	if v.Inputs == nil {
		return nil, nil
	}
	val, diags := v.Inputs.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate inputs: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("inputs must be a list of variable names, got %s", val.Type().FriendlyName())
	}

	var inputs []string
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.Type() != cty.String {
			return nil, fmt.Errorf("inputs must contain only variable names, got %s", ev.Type().FriendlyName())
		}
		inputs = append(inputs, ev.AsString())
	}
	return inputs, nil
}
