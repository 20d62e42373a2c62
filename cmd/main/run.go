package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/CTAG07/coursegen/pkg/artifact"
	"github.com/CTAG07/coursegen/pkg/batch"
	"github.com/CTAG07/coursegen/pkg/catalog"
	"github.com/CTAG07/coursegen/pkg/naming"
	"github.com/CTAG07/coursegen/pkg/resolve"
	"github.com/CTAG07/coursegen/pkg/templating"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

const lockFileName = ".coursegen.lock"

type runOptions struct {
	configPath string
	discover   bool
	logLevel   string
}

// prepare loads and validates the configuration and builds the run's logger.
func prepare(cmd *cobra.Command, opts runOptions) (*Config, *slog.Logger, error) {
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Generator.LogLevel = opts.logLevel
	}
	if err = cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := parseLogLevel(cfg.Generator.LogLevel)
	return cfg, newLogger(cmd.ErrOrStderr(), level), nil
}

func runGenerate(cmd *cobra.Command, opts runOptions) error {
	cfg, logger, err := prepare(cmd, opts)
	if err != nil {
		return err
	}
	gen := cfg.Generator
	sanitizer := cfg.Naming.Sanitizer()

	if err = os.MkdirAll(gen.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(gen.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run is already writing to %s", gen.OutputDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("Failed to release run lock", "error", err)
		}
	}()

	ext, err := loadCourses(logger, cfg, sanitizer, opts.discover)
	if err != nil {
		return err
	}

	tm, err := templating.NewTemplateManager(logger, cfg.Templates)
	if err != nil {
		return fmt.Errorf("failed to create template manager: %w", err)
	}
	writer := artifact.NewWriter(gen.OutputDir,
		artifact.WithDocumentName(gen.DocumentName),
		artifact.WithScriptName(gen.ScriptName),
		artifact.WithLogger(logger),
	)

	var driverOpts []batch.Option
	if opts.discover {
		driverOpts = append(driverOpts, batch.WithRecordFolders())
	}
	driver := batch.NewDriver(logger, resolve.NewResolver(), tm, sanitizer, writer, driverOpts...)
	summary := driver.Run(ext)

	reportStale(logger, writer, sanitizer, summary)
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// loadCourses reads the configured source, or the existing course directories in
// discovery mode.
func loadCourses(logger *slog.Logger, cfg *Config, s naming.Sanitizer, discover bool) (catalog.Extraction, error) {
	gen := cfg.Generator
	if discover {
		records, err := catalog.Discover(gen.OutputDir, s)
		if err != nil {
			return catalog.Extraction{}, err
		}
		logger.Info("Discovered course directories", "dir", gen.OutputDir, "count", len(records))
		return catalog.Extraction{Records: records}, nil
	}

	extractor := catalog.NewExtractor(
		catalog.WithDefaultLevel(gen.DefaultLevel),
		catalog.WithLogger(logger),
	)
	ext, err := extractor.ExtractFile(gen.SourcePath)
	if err != nil {
		return catalog.Extraction{}, err
	}
	logger.Info("Extracted course records", "source", gen.SourcePath, "records", len(ext.Records), "malformed", len(ext.Malformed))
	return ext, nil
}

// reportStale warns about course directories this run did not produce, such as those
// left behind by a title change. They are never removed.
func reportStale(logger *slog.Logger, w *artifact.Writer, s naming.Sanitizer, summary batch.Summary) {
	existing, err := w.Existing()
	if err != nil {
		logger.Warn("Failed to list output directory", "error", err)
		return
	}
	current := make(map[string]struct{}, len(summary.Results))
	for _, r := range summary.Results {
		if r.Dir != "" {
			current[r.Dir] = struct{}{}
		}
	}
	for _, dir := range existing {
		if _, ok := current[dir]; ok {
			continue
		}
		if id, _, ok := s.Parse(dir); ok {
			logger.Warn("Stale course directory", "dir", dir, "id", id)
		}
	}
}
