// Package session records a build whose engine runs in the same process.
//
// The engine either calls the Listener directly or emits OpenTelemetry spans
// through the session's tracer provider; both paths end in the same snapshot.
package session

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/buildviz/internal/adapters/config"
	"go.trai.ch/buildviz/internal/adapters/extract"
	"go.trai.ch/buildviz/internal/adapters/logger"
	"go.trai.ch/buildviz/internal/adapters/snapshot"
	"go.trai.ch/buildviz/internal/adapters/telemetry"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/engine/recorder"
)

// Options configures New.
type Options struct {
	// ConfigPath is an explicit settings file. Empty means discovery from Dir.
	ConfigPath string
	// Dir is where settings discovery starts. Empty means the working directory.
	Dir string
	// Output is the snapshot path. Empty means the destination property of the
	// first project decides.
	Output string
	// LogOutput receives diagnostics. Nil means stderr.
	LogOutput io.Writer
}

// Session owns the recorder and the tracer provider feeding it.
type Session struct {
	recorder *recorder.Recorder
	provider *sdktrace.TracerProvider
}

// New creates a recording session using the configured settings.
func New(opts Options) (*Session, error) {
	log := logger.New()
	if l, ok := log.(*logger.Logger); ok && opts.LogOutput != nil {
		l.SetOutput(opts.LogOutput)
	}

	settings, err := loadSettings(config.NewLoader(log), opts)
	if err != nil {
		return nil, err
	}
	if opts.Output != "" {
		settings.Record.Destination = opts.Output
	}

	rec := recorder.New(snapshot.NewStore(), extract.New(), log, settings.Record)
	return &Session{
		recorder: rec,
		provider: telemetry.NewTracerProvider(telemetry.NewBridge(rec, log)),
	}, nil
}

func loadSettings(loader *config.Loader, opts Options) (domain.Settings, error) {
	if opts.ConfigPath != "" {
		return loader.LoadFile(opts.ConfigPath)
	}
	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return domain.Settings{}, errors.Join(domain.ErrConfigReadFailed, err)
		}
		dir = cwd
	}
	return loader.Load(filepath.Clean(dir))
}

// Listener returns the listener receiving the build notifications.
func (s *Session) Listener() Listener {
	return s.recorder
}

// TracerProvider returns a provider whose build spans are recorded.
func (s *Session) TracerProvider() *sdktrace.TracerProvider {
	return s.provider
}

// Install registers the session's provider as the global OpenTelemetry provider.
func (s *Session) Install() {
	otel.SetTracerProvider(s.provider)
}

// Destination returns the snapshot path, or "" while none is known.
func (s *Session) Destination() string {
	return s.recorder.Destination()
}

// Close shuts the tracer provider down and writes the final snapshot.
func (s *Session) Close(ctx context.Context) error {
	err := s.provider.Shutdown(ctx)
	if s.recorder.Destination() != "" {
		err = errors.Join(err, s.recorder.Flush())
	}
	return err
}
