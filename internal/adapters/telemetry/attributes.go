package telemetry

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/buildviz/internal/core/domain"
)

// Span kinds carried in AttrKind.
const (
	KindProject = "project"
	KindTarget  = "target"
	KindTask    = "task"
)

// Attribute keys read from build spans. The span name is the project, target or
// task name unless AttrName is set.
const (
	AttrKind = attribute.Key("buildviz.kind")
	AttrName = attribute.Key("buildviz.name")

	AttrBaseDirectory    = attribute.Key("buildviz.base_directory")
	AttrBuildFile        = attribute.Key("buildviz.build_file")
	AttrBuildFileURI     = attribute.Key("buildviz.build_file_uri")
	AttrBuildTargets     = attribute.Key("buildviz.build_targets")
	AttrPlatform         = attribute.Key("buildviz.platform")
	AttrFrameworkName    = attribute.Key("buildviz.framework.name")
	AttrFrameworkVersion = attribute.Key("buildviz.framework.version")

	AttrLocation     = attribute.Key("buildviz.location")
	AttrExecuted     = attribute.Key("buildviz.executed")
	AttrIf           = attribute.Key("buildviz.if")
	AttrUnless       = attribute.Key("buildviz.unless")
	AttrDescription  = attribute.Key("buildviz.description")
	AttrDependencies = attribute.Key("buildviz.dependencies")

	AttrType        = attribute.Key("buildviz.type")
	AttrFailOnError = attribute.Key("buildviz.fail_on_error")

	AttrLevel = attribute.Key("buildviz.level")

	// PropertyPrefix prefixes project properties and task attributes.
	PropertyPrefix = "buildviz.property."
)

// ProjectAttributes returns the span attributes describing e.
func ProjectAttributes(e domain.ProjectStarted) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		AttrKind.String(KindProject),
		AttrName.String(e.ProjectName),
		AttrBaseDirectory.String(e.BaseDirectory),
		AttrBuildFile.String(e.BuildFileLocalName),
		AttrBuildFileURI.String(e.BuildFileURI),
		AttrBuildTargets.StringSlice(e.BuildTargets),
		AttrPlatform.String(e.PlatformName),
		AttrFrameworkName.String(e.TargetFramework.Name),
		AttrFrameworkVersion.String(e.TargetFramework.Version),
	}
	for _, k := range slices.Sorted(maps.Keys(e.Properties)) {
		attrs = append(attrs, attribute.String(PropertyPrefix+k, e.Properties[k]))
	}
	return attrs
}

// TargetAttributes returns the span attributes describing e.
func TargetAttributes(e domain.TargetStarted) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrKind.String(KindTarget),
		AttrName.String(e.Name),
		AttrLocation.String(e.Location),
		AttrExecuted.Bool(e.Executed),
		AttrIf.String(e.IfCondition),
		AttrUnless.String(e.UnlessCondition),
		AttrDescription.String(e.Description),
		AttrDependencies.StringSlice(e.Dependencies),
	}
}

// TaskAttributes returns the span attributes describing e with props as its
// extra properties.
func TaskAttributes(e domain.TaskStarted, props map[string]any) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		AttrKind.String(KindTask),
		AttrName.String(e.Name),
		AttrType.String(e.Type),
		AttrLocation.String(e.Location),
		AttrFailOnError.Bool(e.FailOnError),
	}
	for _, k := range slices.Sorted(maps.Keys(props)) {
		attrs = append(attrs, propertyAttribute(PropertyPrefix+k, props[k]))
	}
	return attrs
}

func propertyAttribute(key string, v any) attribute.KeyValue {
	switch t := v.(type) {
	case string:
		return attribute.String(key, t)
	case bool:
		return attribute.Bool(key, t)
	case int:
		return attribute.Int(key, t)
	case int64:
		return attribute.Int64(key, t)
	case float64:
		return attribute.Float64(key, t)
	case []string:
		return attribute.StringSlice(key, t)
	default:
		return attribute.String(key, fmt.Sprint(t))
	}
}

// spanAttributes is a read view over the attributes of one span.
type spanAttributes map[attribute.Key]attribute.Value

func newSpanAttributes(kvs []attribute.KeyValue) spanAttributes {
	attrs := make(spanAttributes, len(kvs))
	for _, kv := range kvs {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func (a spanAttributes) str(k attribute.Key) string {
	if v, ok := a[k]; ok && v.Type() == attribute.STRING {
		return v.AsString()
	}
	return ""
}

func (a spanAttributes) boolean(k attribute.Key) bool {
	if v, ok := a[k]; ok && v.Type() == attribute.BOOL {
		return v.AsBool()
	}
	return false
}

func (a spanAttributes) strings(k attribute.Key) []string {
	if v, ok := a[k]; ok && v.Type() == attribute.STRINGSLICE {
		return v.AsStringSlice()
	}
	return nil
}

// properties returns every PropertyPrefix attribute with the prefix removed.
func (a spanAttributes) properties() map[string]any {
	props := make(map[string]any)
	for k, v := range a {
		if name, ok := strings.CutPrefix(string(k), PropertyPrefix); ok {
			props[name] = v.AsInterface()
		}
	}
	return props
}

func (a spanAttributes) stringProperties() map[string]string {
	props := make(map[string]string)
	for name, v := range a.properties() {
		if s, ok := v.(string); ok {
			props[name] = s
		}
	}
	return props
}
