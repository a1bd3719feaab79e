// Package telemetry turns OpenTelemetry spans of an instrumented build engine
// into build lifecycle notifications.
package telemetry

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// spanInfo is what the Bridge remembers about a started span.
type spanInfo struct {
	kind    string
	name    string
	project domain.ProjectID
}

// Bridge implements sdktrace.SpanProcessor to feed build spans to a BuildListener.
//
// A span whose buildviz.kind attribute is project, target or task produces the
// matching start notification when it starts and the finish notification when
// it ends. Span events of a build span are delivered as logged messages.
// Spans without a kind are transparent: their children still find the nearest
// project ancestor through them.
type Bridge struct {
	listener ports.BuildListener
	logger   ports.Logger

	mu    sync.Mutex
	spans map[trace.SpanID]spanInfo
}

// NewBridge returns a new Bridge.
func NewBridge(listener ports.BuildListener, logger ports.Logger) *Bridge {
	return &Bridge{
		listener: listener,
		logger:   logger,
		spans:    make(map[trace.SpanID]spanInfo),
	}
}

// NewTracerProvider returns a TracerProvider that reports every span to b.
func NewTracerProvider(b *Bridge) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(b))
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	attrs := newSpanAttributes(s.Attributes())
	name := attrs.str(AttrName)
	if name == "" {
		name = s.Name()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var parent spanInfo
	var parentID trace.SpanID
	if p := s.Parent(); p.IsValid() {
		parentID = p.SpanID()
		parent = b.spans[parentID]
	}

	info := spanInfo{kind: attrs.str(AttrKind), name: name, project: parent.project}
	id := sc.SpanID().String()

	var err error
	switch info.kind {
	case KindProject:
		info.project = domain.ProjectID(id)
		err = b.listener.ProjectStarted(domain.ProjectStarted{
			Project:            info.project,
			BaseDirectory:      attrs.str(AttrBaseDirectory),
			BuildFileLocalName: attrs.str(AttrBuildFile),
			BuildFileURI:       attrs.str(AttrBuildFileURI),
			BuildTargets:       attrs.strings(AttrBuildTargets),
			ProjectName:        name,
			PlatformName:       attrs.str(AttrPlatform),
			TargetFramework: domain.TargetFramework{
				Name:    attrs.str(AttrFrameworkName),
				Version: attrs.str(AttrFrameworkVersion),
			},
			Properties: attrs.stringProperties(),
		})
	case KindTarget:
		err = b.listener.TargetStarted(domain.TargetStarted{
			Project:         info.project,
			Target:          domain.TargetID(id),
			Name:            name,
			Location:        attrs.str(AttrLocation),
			Executed:        attrs.boolean(AttrExecuted),
			IfCondition:     attrs.str(AttrIf),
			UnlessCondition: attrs.str(AttrUnless),
			Description:     attrs.str(AttrDescription),
			Dependencies:    attrs.strings(AttrDependencies),
		})
	case KindTask:
		e := domain.TaskStarted{
			Project:     info.project,
			Task:        domain.TaskID(id),
			Name:        name,
			Type:        attrs.str(AttrType),
			Location:    attrs.str(AttrLocation),
			FailOnError: attrs.boolean(AttrFailOnError),
			Value:       domain.PropertyMap(attrs.properties()),
		}
		if parent.kind == KindTarget {
			e.Parent = domain.TargetID(parentID.String())
		}
		err = b.listener.TaskStarted(e)
	default:
	}

	b.spans[sc.SpanID()] = info
	b.report(err, info)
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	info, ok := b.spans[sc.SpanID()]
	if !ok {
		return
	}
	delete(b.spans, sc.SpanID())

	id := sc.SpanID().String()
	switch info.kind {
	case KindProject, KindTarget, KindTask:
	default:
		return
	}

	for _, ev := range s.Events() {
		level := newSpanAttributes(ev.Attributes).str(AttrLevel)
		b.report(b.listener.MessageLogged(domain.MessageLogged{
			Project: info.project,
			Level:   domain.ParseLogLevel(level),
			Message: ev.Name,
		}), info)
	}

	var err error
	switch info.kind {
	case KindProject:
		err = b.listener.ProjectFinished(domain.ProjectFinished{Project: info.project})
	case KindTarget:
		err = b.listener.TargetFinished(domain.TargetFinished{Project: info.project, Target: domain.TargetID(id)})
	case KindTask:
		err = b.listener.TaskFinished(domain.TaskFinished{Project: info.project, Task: domain.TaskID(id)})
	}
	b.report(err, info)
}

func (b *Bridge) report(err error, info spanInfo) {
	if err == nil || b.logger == nil {
		return
	}
	b.logger.Error(zerr.With(zerr.With(err, "span", info.name), "kind", info.kind))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
