// Package config defines the format-agnostic plan model for the
// application, along with the Loader interface for reading it from disk.
//
// The config.Model is the single source of truth for the dataset and
// orchestrator packages. The concrete HCL implementation of the Loader
// lives in the internal/hcl package.
package config
