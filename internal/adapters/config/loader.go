// Package config provides the settings loader for buildviz.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds buildviz.yaml in cwd or the nearest parent directory.
// Without a file the default settings are returned.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	path, ok := findConfiguration(cwd)
	if !ok {
		return domain.DefaultSettings(), nil
	}
	return l.LoadFile(path)
}

// LoadFile reads the settings from path.
func (l *Loader) LoadFile(path string) (domain.Settings, error) {
	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}

	if file.Version == "" && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("%s declares no version, assuming %q", path, domain.ConfigVersion))
	}

	settings, err := file.settings(filepath.Dir(path))
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return settings, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

// settings validates f and merges it onto the defaults. A relative output path
// is resolved against dir.
func (f *File) settings(dir string) (domain.Settings, error) {
	if f.Version != "" && f.Version != domain.ConfigVersion {
		return domain.Settings{}, zerr.With(domain.ErrUnsupportedConfigVersion, "version", f.Version)
	}

	s := domain.DefaultSettings()

	if f.Record.Output != "" {
		s.Record.Destination = f.Record.Output
		if !filepath.IsAbs(s.Record.Destination) {
			s.Record.Destination = filepath.Join(dir, s.Record.Destination)
		}
	}
	if f.Record.Property != "" {
		s.Record.DestinationProperty = f.Record.Property
	}

	if f.Render.WrapWidth != nil {
		if *f.Render.WrapWidth < 1 {
			return domain.Settings{}, zerr.With(domain.ErrInvalidWrapWidth, "wrap_width", *f.Render.WrapWidth)
		}
		s.Render.WrapWidth = *f.Render.WrapWidth
	}
	s.Render.ExcludedTaskTypes = appendMissing(s.Render.ExcludedTaskTypes, f.Render.ExcludeTaskTypes)
	s.Render.ExcludedAttributes = appendMissing(s.Render.ExcludedAttributes, f.Render.ExcludeAttributes)

	return s, nil
}

func appendMissing(dst, src []string) []string {
	for _, v := range src {
		if v != "" && !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or supplied by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
