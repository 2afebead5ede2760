package container

import (
	"context"
	"fmt"

	"sheetlens/adapters/datareadiness"
	"sheetlens/adapters/datareadiness/coercer"
	"sheetlens/adapters/excel"
	"sheetlens/internal"
	"sheetlens/internal/config"
	"sheetlens/internal/dataset"
	"sheetlens/internal/session"
	"sheetlens/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Intake pipeline
	Reader   *excel.WorkbookReader
	Intake   *dataset.Intake
	Profiler *datareadiness.ProfilerAdapter

	// Shared session state behind both hosts
	Workspace *session.Workspace
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.DefaultLogger
	logger.SetLevel(internal.ParseLogLevel(cfg.Log.Level))

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.MaxFileSize = cfg.Workspace.MaxUploadBytes
	reader := excel.NewWorkbookReader(readerConfig)

	intake := dataset.NewIntake(reader, cfg.Workspace.ParseConcurrency)
	profiler := datareadiness.NewProfilerAdapter(coercer.NewTypeCoercer(readerConfig.CoercionConfig))

	workspace := session.NewWorkspace(intake, cfg.Workspace.MaxFiles)
	workspace.SetProfiler(profiler)

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Reader:    reader,
		Intake:    intake,
		Profiler:  profiler,
		Workspace: workspace,
	}

	logger.Info("Container initialized: max_files=%d parse_concurrency=%d", cfg.Workspace.MaxFiles, cfg.Workspace.ParseConcurrency)
	return c, nil
}

// UIOptions returns the host limits derived from configuration
func (c *Container) UIOptions() ui.Options {
	return ui.Options{
		MaxUploadBytes: c.Config.Workspace.MaxUploadBytes,
		PreviewRows:    c.Config.Workspace.PreviewRows,
	}
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	registry, relationships := c.Workspace.Snapshot()
	c.Logger.Info("Container shutting down with %d datasets and %d relationships in memory", registry.Len(), relationships.Len())
	return ctx.Err()
}
