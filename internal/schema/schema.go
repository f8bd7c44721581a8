// Package schema holds the HCL-specific decode targets for plan files. The
// internal/hcl loader decodes into these structs and translates them into
// the format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Variable represents a `variable` block inside a dataset block.
type Variable struct {
	Name          string         `hcl:"name,label"`
	SourcePattern string         `hcl:"source_pattern,optional"`
	Unit          string         `hcl:"unit,optional"`
	ConvertTo     string         `hcl:"convert_to,optional"`
	Remap         bool           `hcl:"remap,optional"`
	Derive        string         `hcl:"derive,optional"`
	Inputs        hcl.Expression `hcl:"inputs,optional"`
	Rechunk       bool           `hcl:"rechunk,optional"`
}

// Dataset represents a `dataset` block from a plan file.
type Dataset struct {
	Name      string      `hcl:"name,label"`
	SourceDir string      `hcl:"source_dir"`
	Grid      string      `hcl:"grid,optional"`
	Variables []*Variable `hcl:"variable,block"`
}

// PBS represents the optional `pbs` block carrying scheduler overrides.
type PBS struct {
	Queue    string `hcl:"queue,optional"`
	Account  string `hcl:"account,optional"`
	Walltime string `hcl:"walltime,optional"`
	NCPUs    int    `hcl:"ncpus,optional"`
	Mem      string `hcl:"mem,optional"`
}

// PlanFile represents the top-level structure of one plan file.
type PlanFile struct {
	Datasets []*Dataset `hcl:"dataset,block"`
	PBS      *PBS       `hcl:"pbs,block"`
}
