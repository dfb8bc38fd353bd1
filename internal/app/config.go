package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath   string // blueprint .hcl file or directory
	LibraryPath string // extra node-library manifests, optional
	OutDir      string // empty writes to the output writer

	DeclareStorage bool
	NotifyURL      string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
