package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ersonp/legendlore/internal/application/handlers"
	"github.com/ersonp/legendlore/internal/domain/format"
	"github.com/ersonp/legendlore/internal/domain/services"
	"github.com/ersonp/legendlore/internal/infrastructure/compendium"
	"github.com/ersonp/legendlore/internal/infrastructure/config"
	"github.com/ersonp/legendlore/internal/infrastructure/logger"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and sources are internal.
type Deps struct {
	Config       *config.Config
	Log          *slog.Logger
	QueryHandler *handlers.QueryHandler
}

// FormatOptions returns the point form options from config.
func (d *Deps) FormatOptions() format.Options {
	return format.Options{
		Header:  d.Config.Format.Header,
		Body:    d.Config.Format.Body,
		Tabstop: d.Config.Format.Tabstop,
	}
}

// withDeps loads config, sets up logging and builds dependencies, then
// calls the provided function.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := loadConfig(cwd)
	if err != nil {
		return err
	}

	if err := initLogging(cfg); err != nil {
		return err
	}
	log := logger.ForComponent("compendium")

	source := compendium.NewFileSource(cfg.Compendium.Sources, cfg.Compendium.Encoding, log)
	service := services.NewCompendiumService(source, cfg.Compendium.Errata)

	return fn(&Deps{
		Config:       cfg,
		Log:          log,
		QueryHandler: handlers.NewQueryHandler(service),
	})
}

// loadConfig loads the config in basePath and applies the global flags.
func loadConfig(basePath string) (*config.Config, error) {
	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if len(globalSources) > 0 {
		cfg.Compendium.Sources = globalSources
	}
	if globalLogLevel != "" {
		cfg.Log.Level = globalLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) error {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Log.Format
	logger.Init(logCfg)
	return nil
}
