// Package app implements the application layer for buildviz.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/buildviz/internal/adapters/eventstream"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
	"go.trai.ch/buildviz/internal/engine/recorder"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.SnapshotStore
	renderer     ports.GraphRenderer
	extractor    ports.PropertyExtractor
	events       *eventstream.Reader
	watcher      ports.Watcher
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.SnapshotStore,
	renderer ports.GraphRenderer,
	extractor ports.PropertyExtractor,
	events *eventstream.Reader,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		renderer:     renderer,
		extractor:    extractor,
		events:       events,
		watcher:      watcher,
		logger:       log,
	}
}

// RecordOptions configures Record.
type RecordOptions struct {
	// ConfigPath is an explicit settings file. Empty means discovery from the working directory.
	ConfigPath string
	// Output presets the snapshot destination, overriding the config file.
	Output string
}

// Record reads lifecycle notifications from r and records them until EOF or
// until ctx is done.
func (a *App) Record(ctx context.Context, r io.Reader, opts RecordOptions) error {
	rec, err := a.newRecorder(opts)
	if err != nil {
		return err
	}

	stats, err := a.events.Read(ctx, r, rec)
	if err != nil {
		return zerr.Wrap(err, "recording interrupted")
	}

	if rec.Destination() == "" {
		a.logger.Warn("no snapshot destination was configured, nothing was recorded")
		return nil
	}
	if err := rec.Flush(); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("recorded %d notifications to %s (%d skipped)",
		stats.Delivered, rec.Destination(), stats.Skipped))
	return nil
}

func (a *App) newRecorder(opts RecordOptions) (*recorder.Recorder, error) {
	settings, err := a.loadSettings(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Output != "" {
		settings.Record.Destination = opts.Output
	}
	return recorder.New(a.store, a.extractor, a.logger, settings.Record), nil
}

// RenderOptions configures Render and Watch.
type RenderOptions struct {
	// ConfigPath is an explicit settings file. Empty means discovery from the working directory.
	ConfigPath string
	// Snapshot is the recorded build to render.
	Snapshot string
	// Output is the DOT file to write. Empty means Stdout.
	Output string
	// Stdout receives the graph when Output is empty.
	Stdout io.Writer
}

// Render loads the snapshot and writes its graph. Nothing is written when
// loading or rendering fails.
func (a *App) Render(_ context.Context, opts RenderOptions) error {
	settings, err := a.loadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}
	return a.render(opts, settings.Render)
}

func (a *App) render(opts RenderOptions, settings domain.RenderSettings) error {
	build, err := a.store.Load(opts.Snapshot)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, build, settings); err != nil {
		return err
	}

	if opts.Output == "" {
		if _, err := opts.Stdout.Write(buf.Bytes()); err != nil {
			return zerr.Wrap(err, domain.ErrRenderFailed.Error())
		}
		return nil
	}

	if err := os.WriteFile(opts.Output, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", opts.Output)
	}
	return nil
}

func (a *App) loadSettings(configPath string) (domain.Settings, error) {
	if configPath != "" {
		return a.configLoader.LoadFile(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return domain.Settings{}, errors.Join(domain.ErrConfigReadFailed, err)
	}
	return a.configLoader.Load(filepath.Clean(cwd))
}
