package config

import "context"

// Loader is the interface for a format-specific plan loader.
type Loader interface {
	// Load reads plan files from the given paths (files or directories),
	// translates them into the format-agnostic model, and validates the
	// result.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
