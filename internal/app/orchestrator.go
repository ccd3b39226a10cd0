package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/milesj/packager/internal/config"
	"github.com/milesj/packager/internal/domain"
	"github.com/milesj/packager/internal/manifest"
	"github.com/milesj/packager/internal/minify"
	"github.com/milesj/packager/internal/packager"
	"github.com/milesj/packager/internal/utils"
)

// Orchestrator wires configuration, minifiers and the packager for CLI runs
type Orchestrator struct {
	config   *config.Config
	packager *packager.Packager
	logger   *utils.Logger
	output   io.Writer
	opts     domain.CommonOptions
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	// Source is the directory holding the manifest. Ignored when
	// Config.Packaging.Manifest names a file.
	Source string
	// LogOutput overrides the destination of logs and progress (stderr)
	LogOutput io.Writer
}

// NewOrchestrator loads the manifest and creates an orchestrator for it
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := "info"
	logFormat := "pretty"
	if cfg.Logging.Level != "" {
		logLevel = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logFormat = cfg.Logging.Format
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  logFormat,
		Output:  opts.LogOutput,
		Verbose: opts.Verbose,
	})

	registry := minify.NewRegistryFromConfig(cfg.Minify)
	logger.Debug().
		Strs("minifiers", registry.Types()).
		Msg("Registered minifiers")

	packagerOpts := packager.PackagerOptions{
		Minifiers:   registry,
		Logger:      logger,
		DefaultType: cfg.Packaging.DefaultType,
	}

	var (
		p   *packager.Packager
		err error
	)
	if cfg.Packaging.Manifest != "" {
		p, err = packager.OpenFile(utils.ExpandPath(cfg.Packaging.Manifest), packagerOpts)
	} else {
		source := opts.Source
		if source == "" {
			source = "."
		}
		p, err = packager.Open(utils.ExpandPath(source), packagerOpts)
	}
	if err != nil {
		return nil, err
	}

	output := opts.LogOutput
	if output == nil {
		output = os.Stderr
	}

	return &Orchestrator{
		config:   cfg,
		packager: p,
		logger:   logger,
		output:   output,
		opts:     opts.CommonOptions,
	}, nil
}

// Run packages items (all items when empty) and returns the output. output
// overrides the manifest's outputFile when set.
func (o *Orchestrator) Run(items []string, output string) (string, error) {
	startTime := time.Now()
	m := o.packager.Manifest()

	opts := o.packager.DefaultOptions()
	if output != "" {
		opts.OutputFile = output
	}
	opts.PrependPath = o.config.Packaging.PrependPath
	opts.DocBlocks = o.config.Packaging.DocBlocks
	opts.FilterType = o.config.Packaging.FilterType
	opts.StrictMinify = o.config.Packaging.StrictMinify
	opts.DryRun = o.opts.DryRun

	if o.opts.Progress {
		progress := utils.NewItemProgress(o.output, utils.DescPackaging)
		opts.Progress = func(done, total int, item manifest.Item) {
			progress.Step(done, total, item.Name)
		}
	}

	o.logger.Info().
		Str("package", m.Name).
		Str("version", m.Version).
		Strs("items", items).
		Strs("filter_type", opts.FilterType).
		Msg("Starting packaging")

	text, err := o.packager.Package(items, opts)
	if err != nil {
		return text, err
	}

	o.logger.Info().
		Dur("duration", time.Since(startTime)).
		Strs("resolved", o.packager.CurrentPackage().Names()).
		Msg("Packaging completed")

	return text, nil
}

// Archive bundles files given as "path[:name[:folder]]" into a zip archive
// and returns the archive path
func (o *Orchestrator) Archive(output string, files []string) (string, error) {
	parsed := make([]packager.ArchiveFile, 0, len(files))
	for _, f := range files {
		file, err := packager.ParseArchiveFile(f)
		if err != nil {
			return "", err
		}
		parsed = append(parsed, file)
	}

	if o.opts.DryRun {
		if err := o.packager.ValidateArchive(parsed); err != nil {
			return "", err
		}
		o.logger.Info().
			Str("output", o.packager.FormatName(output)).
			Int("files", len(parsed)).
			Msg("Dry run, skipping archive")
		return "", nil
	}

	return o.packager.Archive(output, parsed)
}

// Items returns the manifest catalog in declaration order
func (o *Orchestrator) Items() []manifest.Item {
	return o.packager.Items()
}

// Manifest returns the loaded manifest
func (o *Orchestrator) Manifest() *manifest.Manifest {
	return o.packager.Manifest()
}
