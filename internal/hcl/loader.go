// Package hcl implements the config.Loader interface for HCL plan files.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/hydroclim/climgen/internal/config"
	"github.com/hydroclim/climgen/internal/ctxlog"
	"github.com/hydroclim/climgen/internal/fsutil"
	"github.com/hydroclim/climgen/internal/schema"
)

// Loader discovers, parses and translates .hcl plan files.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. Each path may be a single plan file or a
// directory searched recursively; datasets from all files are merged into
// one model, and a later pbs block replaces an earlier one.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find plan files in %s: %w", p, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl plan files found in %v", paths)
	}
	logger.Debug("Plan files discovered.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	for _, file := range files {
		parsed, err := l.parseFile(parser, file)
		if err != nil {
			return nil, err
		}
		for _, ds := range parsed.Datasets {
			translated, err := l.translateDataset(ds)
			if err != nil {
				return nil, fmt.Errorf("in plan file %s: %w", file, err)
			}
			model.Datasets = append(model.Datasets, translated)
		}
		if parsed.PBS != nil {
			if model.PBS != nil {
				logger.Debug("Overriding earlier pbs block.", "file", file)
			}
			model.PBS = l.translatePBS(parsed.PBS)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Plan loaded and translated into unified model.", "datasets", len(model.Datasets))
	return model, nil
}

// parseFile parses a single HCL file into the plan schema.
func (l *Loader) parseFile(parser *hclparse.Parser, path string) (*schema.PlanFile, error) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, diags)
	}

	var parsed schema.PlanFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode plan file %s: %w", path, diags)
	}
	return &parsed, nil
}
