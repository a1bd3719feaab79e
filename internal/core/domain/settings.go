package domain

import "slices"

// DefaultExcludedTaskTypes lists the utility task types that never appear in a rendered graph.
var DefaultExcludedTaskTypes = []string{
	"NAnt.Core.Tasks.PropertyTask",
	"NAnt.Core.Tasks.IncludeTask",
}

// DefaultExcludedAttributes lists the stream-like extra properties that are never rendered.
var DefaultExcludedAttributes = []string{
	"OutputWriter",
	"InputWriter",
	"ErrorWriter",
}

// RecordSettings configures the recorder.
type RecordSettings struct {
	// Destination is a preset snapshot path. When set, project properties are ignored.
	Destination string
	// DestinationProperty is the project property that names the snapshot path.
	DestinationProperty string
}

// RenderSettings configures the graph renderer.
type RenderSettings struct {
	WrapWidth          int
	ExcludedTaskTypes  []string
	ExcludedAttributes []string
}

// Settings is the complete, validated configuration.
type Settings struct {
	Record RecordSettings
	Render RenderSettings
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Record: RecordSettings{
			DestinationProperty: DefaultDestinationProperty,
		},
		Render: RenderSettings{
			WrapWidth:          DefaultWrapWidth,
			ExcludedTaskTypes:  slices.Clone(DefaultExcludedTaskTypes),
			ExcludedAttributes: slices.Clone(DefaultExcludedAttributes),
		},
	}
}

// IsExcludedTaskType reports whether tasks of type typ are hidden from the graph.
func (s RenderSettings) IsExcludedTaskType(typ string) bool {
	return slices.Contains(s.ExcludedTaskTypes, typ)
}

// IsExcludedAttribute reports whether the extra property key is hidden from task nodes.
func (s RenderSettings) IsExcludedAttribute(key string) bool {
	return slices.Contains(s.ExcludedAttributes, key)
}
