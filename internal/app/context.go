// Package app wires configuration, logging, and the render pipeline
// into the command-line application lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kylejlin/snafed/configs"
	"github.com/kylejlin/snafed/internal/logging"
	"github.com/kylejlin/snafed/internal/view"
	"github.com/kylejlin/snafed/pkg/spectrogram"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ConfigFile string
	FieldsFile string
	OutputDir  string
	Width      int
	Index      int
	All        bool
	Verbose    bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// App handles the render application lifecycle
type App struct {
	ctx    *Context
	config *configs.Config
	fields view.FieldProvider
	logger logging.Logger
}

// NewApp creates a new render application
func NewApp(ctx *Context) (*App, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI flags override the config file
	if ctx.Width > 0 {
		config.Render.Width = ctx.Width
	}
	if ctx.OutputDir != "" {
		config.Render.OutputDir = ctx.OutputDir
	}
	if ctx.Verbose {
		config.LogLevel = "debug"
	}

	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	ctx.Config = config

	logger, err := setupLogging(config)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	ctx.Logger = logger

	var fields view.FieldProvider
	if ctx.FieldsFile != "" {
		fieldsConfig, err := LoadFieldsConfig(ctx.FieldsFile)
		if err != nil {
			return nil, err
		}
		fields = fieldsConfig
		logger.Debug("fields configuration loaded", logging.Fields{
			"file":  ctx.FieldsFile,
			"rules": len(fieldsConfig.Fields),
		})
	}

	return &App{
		ctx:    ctx,
		config: config,
		fields: fields,
		logger: logger,
	}, nil
}

// setupLogging configures logging based on the merged configuration
func setupLogging(config *configs.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.Config{
		Level:      logging.ParseLevel(config.LogLevel),
		OutputPath: config.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
	})
}

// Run renders the requested file (or every file) of the session and
// writes the results as PNGs.
func (app *App) Run(ctx context.Context, paths []string) error {
	session, err := app.newSession(paths)
	if err != nil {
		return err
	}

	session.Resize(app.config.Render.Width)

	indices := []int{app.ctx.Index}
	if app.ctx.All {
		indices = indices[:0]
		for i := 0; i < session.FileCount(); i++ {
			indices = append(indices, i)
		}
	}

	for _, index := range indices {
		if err := session.SelectFile(index); err != nil {
			return err
		}

		result, err := session.Render(ctx)
		if err != nil {
			return err
		}

		if err := app.writeResult(paths[index], result); err != nil {
			return err
		}
	}

	return nil
}

// newSession reads the input files and builds the render orchestrator.
func (app *App) newSession(paths []string) (*view.Orchestrator, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no audio files given")
	}

	files := make([]view.AudioFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, view.AudioFile{Name: filepath.Base(path), Content: content})
	}

	analyzer, renderer, err := BuildPipeline(app.config)
	if err != nil {
		return nil, err
	}

	return view.NewOrchestrator(files, analyzer, renderer, app.fields, app.logger), nil
}

// writeResult encodes one render result next to the session output dir
// and reports fields that could not be computed or drawn.
func (app *App) writeResult(inputPath string, result *view.RenderResult) error {
	base := filepath.Base(inputPath)
	outName := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	outPath := filepath.Join(app.config.Render.OutputDir, outName)

	if err := os.MkdirAll(app.config.Render.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := result.Surface.EncodePNG(f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", outPath, err)
	}

	app.logger.Info("spectrogram written", logging.Fields{
		"input":  base,
		"output": outPath,
		"width":  result.Surface.Width(),
		"height": result.Surface.Height(),
	})

	reportUncomputed(os.Stdout, base, result.Skipped, result.Underivable)
	return nil
}

// reportUncomputed prints the could-not-compute/could-not-render list
// for one file, the way the view layer would surface it to the user.
func reportUncomputed(w *os.File, name string, skipped []spectrogram.Mark, underivable []string) {
	for _, label := range underivable {
		fmt.Fprintf(w, "%s: could not compute %q\n", name, label)
	}
	for _, mark := range skipped {
		fmt.Fprintf(w, "%s: could not render %q at %gs\n", name, mark.Label, mark.Seconds)
	}
}
