package config

// File represents the structure of the buildviz.yaml configuration file.
type File struct {
	Version string        `yaml:"version"`
	Record  RecordSection `yaml:"record"`
	Render  RenderSection `yaml:"render"`
}

// RecordSection configures the recorder.
type RecordSection struct {
	Output   string `yaml:"output"`
	Property string `yaml:"property"`
}

// RenderSection configures the renderer.
// A nil WrapWidth keeps the default; an explicit value is validated.
type RenderSection struct {
	WrapWidth         *int     `yaml:"wrapWidth"`
	ExcludeTaskTypes  []string `yaml:"excludeTaskTypes"`
	ExcludeAttributes []string `yaml:"excludeAttributes"`
}
