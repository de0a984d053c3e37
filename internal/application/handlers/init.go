// Package handlers contains application use case handlers.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ersonp/legendlore/internal/infrastructure/compendium"
	"github.com/ersonp/legendlore/internal/infrastructure/config"
)

// InitHandler handles config initialization.
type InitHandler struct {
	log *slog.Logger
}

// NewInitHandler creates a new init handler. A nil logger uses slog.Default.
func NewInitHandler(log *slog.Logger) *InitHandler {
	if log == nil {
		log = slog.Default()
	}
	return &InitHandler{log: log}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	Sources    []string
	// Files are the dataset files the sources match right now.
	Files []string
}

// Handle writes a config into basePath. Empty sources keep the default patterns.
func (h *InitHandler) Handle(basePath string, sources []string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("legendlore already initialized in %s", basePath)
	}

	if len(sources) == 0 {
		if err := config.WriteDefault(basePath); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
	} else {
		cfg := config.Default()
		cfg.Compendium.Sources = sources
		if err := config.Write(basePath, cfg); err != nil {
			return nil, fmt.Errorf("writing config: %w", err)
		}
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	files, err := compendium.NewFileSource(cfg.Compendium.Sources, "", h.log).Files()
	if err != nil && !errors.Is(err, compendium.ErrNoSources) {
		return nil, err
	}
	if len(files) == 0 {
		h.log.Warn("no compendium files match the configured sources", "sources", cfg.Compendium.Sources)
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		Sources:    cfg.Compendium.Sources,
		Files:      files,
	}, nil
}
