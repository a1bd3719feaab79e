package session

import (
	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/buildviz/internal/adapters/telemetry"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
)

// Listener receives lifecycle notifications from a host build engine.
type Listener = ports.BuildListener

// Notification payloads delivered to a Listener.
type (
	ProjectID       = domain.ProjectID
	TargetID        = domain.TargetID
	TaskID          = domain.TaskID
	TargetFramework = domain.TargetFramework
	ProjectStarted  = domain.ProjectStarted
	ProjectFinished = domain.ProjectFinished
	TargetStarted   = domain.TargetStarted
	TargetFinished  = domain.TargetFinished
	TaskStarted     = domain.TaskStarted
	TaskFinished    = domain.TaskFinished
	MessageLogged   = domain.MessageLogged
	LogLevel        = domain.LogLevel
)

// Message severities.
const (
	LogLevelDebug = domain.LogLevelDebug
	LogLevelInfo  = domain.LogLevelInfo
	LogLevelWarn  = domain.LogLevelWarn
	LogLevelError = domain.LogLevelError
)

// ProjectAttributes returns the attributes that mark a span as project e.
func ProjectAttributes(e ProjectStarted) []attribute.KeyValue {
	return telemetry.ProjectAttributes(e)
}

// TargetAttributes returns the attributes that mark a span as target e.
func TargetAttributes(e TargetStarted) []attribute.KeyValue {
	return telemetry.TargetAttributes(e)
}

// TaskAttributes returns the attributes that mark a span as task e with the
// given extra properties.
func TaskAttributes(e TaskStarted, props map[string]any) []attribute.KeyValue {
	return telemetry.TaskAttributes(e, props)
}
