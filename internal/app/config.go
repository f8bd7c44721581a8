package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PlanPath  string // hcl plan files
	OutputDir string // final artifacts and generated scripts
	WorkDir   string // intermediate artifacts, removed by the cleanup job

	LogFormat string
	LogLevel  string
}

// NewConfig validates and returns an application configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "work"
	}
	return &cfg, nil
}
