// Package recorder turns build lifecycle notifications into a persisted Build.
package recorder

import (
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
	"go.trai.ch/zerr"
)

// Recorder implements ports.BuildListener.
// Every notification that changes the Build, and every project finish, persists the
// whole Build to the destination. Until a destination is known nothing is written.
type Recorder struct {
	store     ports.SnapshotStore
	extractor ports.PropertyExtractor
	logger    ports.Logger
	settings  domain.RecordSettings

	mu          sync.Mutex
	build       *domain.Build
	destination string
	projects    map[domain.ProjectID]*projectState
}

type projectState struct {
	project *domain.Project
	targets map[domain.TargetID]*domain.Target
}

var _ ports.BuildListener = (*Recorder)(nil)

// New creates a Recorder. A non-empty settings.Destination is used as-is and
// project properties are never consulted.
func New(
	store ports.SnapshotStore,
	extractor ports.PropertyExtractor,
	logger ports.Logger,
	settings domain.RecordSettings,
) *Recorder {
	if settings.DestinationProperty == "" {
		settings.DestinationProperty = domain.DefaultDestinationProperty
	}
	return &Recorder{
		store:       store,
		extractor:   extractor,
		logger:      logger,
		settings:    settings,
		build:       domain.NewBuild(),
		destination: settings.Destination,
		projects:    make(map[domain.ProjectID]*projectState),
	}
}

// Destination returns the snapshot path, or "" while none is known.
func (r *Recorder) Destination() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destination
}

// Snapshot returns the Build recorded so far.
// The returned value is shared with the Recorder and must not be modified.
func (r *Recorder) Snapshot() *domain.Build {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.build
}

// Flush persists the current Build.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persist()
}

// ProjectStarted registers a new project and adopts the destination it names, if any.
func (r *Recorder) ProjectStarted(e domain.ProjectStarted) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[e.Project]; ok {
		return zerr.With(domain.ErrDuplicateProject, "project", string(e.Project))
	}

	if r.destination == "" {
		if dest := e.Properties[r.settings.DestinationProperty]; dest != "" {
			r.destination = dest
			r.logger.Info(fmt.Sprintf("recording build to %s", dest))
		}
	}

	project := &domain.Project{
		BaseDirectory:          e.BaseDirectory,
		BuildFileLocalName:     e.BuildFileLocalName,
		BuildFileURI:           e.BuildFileURI,
		BuildTargets:           slices.Clone(e.BuildTargets),
		ProjectName:            e.ProjectName,
		PlatformName:           e.PlatformName,
		TargetFrameworkName:    e.TargetFramework.Name,
		TargetFrameworkVersion: e.TargetFramework.Version,
	}
	r.projects[e.Project] = &projectState{
		project: project,
		targets: make(map[domain.TargetID]*domain.Target),
	}
	r.build.Projects = append(r.build.Projects, project)

	return r.persist()
}

// ProjectFinished persists the Build.
func (r *Recorder) ProjectFinished(e domain.ProjectFinished) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookupProject(e.Project); err != nil {
		return err
	}
	return r.persist()
}

// TargetStarted appends a new target to its project.
func (r *Recorder) TargetStarted(e domain.TargetStarted) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.lookupProject(e.Project)
	if err != nil {
		return err
	}
	if _, ok := state.targets[e.Target]; ok {
		return zerr.With(zerr.With(domain.ErrDuplicateTarget, "target", string(e.Target)), "project", string(e.Project))
	}

	target := &domain.Target{
		Name:            e.Name,
		Location:        e.Location,
		Executed:        e.Executed,
		IfCondition:     e.IfCondition,
		UnlessCondition: e.UnlessCondition,
		Description:     e.Description,
		Dependencies:    slices.Clone(e.Dependencies),
	}
	state.targets[e.Target] = target
	state.project.Targets = append(state.project.Targets, target)

	return r.persist()
}

// TargetFinished only validates the notification; targets are not updated on completion.
func (r *Recorder) TargetFinished(e domain.TargetFinished) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.lookupProject(e.Project)
	if err != nil {
		return err
	}
	if _, ok := state.targets[e.Target]; !ok {
		return zerr.With(zerr.With(domain.ErrUnknownTarget, "target", string(e.Target)), "project", string(e.Project))
	}
	return nil
}

// TaskStarted appends a new task to its project and to the global task order.
func (r *Recorder) TaskStarted(e domain.TaskStarted) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.lookupProject(e.Project)
	if err != nil {
		return err
	}

	var target *domain.Target
	if e.Parent != "" {
		t, ok := state.targets[e.Parent]
		if !ok {
			return zerr.With(zerr.With(domain.ErrUnknownTarget, "target", string(e.Parent)), "task", e.Name)
		}
		target = t
	}

	extra := map[string]any{}
	if e.Value != nil {
		if props := r.extractor.Extract(e.Value); props != nil {
			extra = props
		}
	}

	task := &domain.Task{
		Name:            e.Name,
		Type:            domain.NewTaskType(e.Type),
		Location:        e.Location,
		Target:          target,
		FailOnError:     e.FailOnError,
		ExtraProperties: extra,
	}
	state.project.Tasks = append(state.project.Tasks, task)
	r.build.TaskOrder = append(r.build.TaskOrder, task)

	return r.persist()
}

// TaskFinished only validates the notification.
func (r *Recorder) TaskFinished(e domain.TaskFinished) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.lookupProject(e.Project)
	return err
}

// MessageLogged is ignored.
func (r *Recorder) MessageLogged(_ domain.MessageLogged) error {
	return nil
}

func (r *Recorder) lookupProject(id domain.ProjectID) (*projectState, error) {
	state, ok := r.projects[id]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownProject, "project", string(id))
	}
	return state, nil
}

// persist must be called with r.mu held.
func (r *Recorder) persist() error {
	if r.destination == "" {
		return nil
	}
	return r.store.Save(r.destination, r.build)
}
