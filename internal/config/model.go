package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Model is the unified, format-agnostic representation of the entire plan:
// every dataset to generate jobs for, plus scheduler resource overrides.
type Model struct {
	Datasets []*Dataset `validate:"required,min=1,dive"`
	PBS      *PBS
}

// Dataset describes one climate data product and the variables it must produce.
type Dataset struct {
	Name      string `validate:"required"`
	SourceDir string `validate:"required"`
	// Grid is the cdo grid description used by variables that request a remap.
	Grid      string
	Variables []*Variable `validate:"required,min=1,dive"`
}

// Variable describes one variable of a dataset and the processed form it
// must reach. A variable is either sourced (SourcePattern set) or derived
// (Derive set, with Inputs naming the variables it derives from).
type Variable struct {
	Name          string `validate:"required"`
	SourcePattern string `validate:"required_without=Derive"`
	Unit          string
	ConvertTo     string
	Remap         bool
	Derive        string   `validate:"omitempty,oneof=mean"`
	Inputs        []string `validate:"required_with=Derive"`
	Rechunk       bool
}

// PBS carries plan-level scheduler resource overrides.
type PBS struct {
	Queue    string
	Account  string
	Walltime string
	NCPUs    int
	Mem      string
}

// Validate checks the structural integrity of the model after translation
// from its on-disk format.
func (m *Model) Validate() error {
	if err := validator.New().Struct(m); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	seen := make(map[string]bool)
	for _, ds := range m.Datasets {
		if seen[ds.Name] {
			return fmt.Errorf("invalid plan: duplicate dataset %q", ds.Name)
		}
		seen[ds.Name] = true
	}
	return nil
}
