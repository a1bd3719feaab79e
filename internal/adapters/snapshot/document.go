package snapshot

import (
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/zerr"
)

// documentVersion is the version written into every snapshot.
const documentVersion = 1

// document is the persisted form of a domain.Build.
// Targets and tasks are stored once in arenas and referenced by id, so shared
// identity survives a round trip. Tasks are stored in global start order.
type document struct {
	Version  int          `json:"version"`
	Projects []projectDoc `json:"projects"`
	Targets  []targetDoc  `json:"targets"`
	Tasks    []taskDoc    `json:"tasks"`
}

type projectDoc struct {
	BaseDirectory          string   `json:"baseDirectory"`
	BuildFileLocalName     string   `json:"buildFileLocalName"`
	BuildFileURI           string   `json:"buildFileUri"`
	BuildTargets           []string `json:"buildTargets"`
	ProjectName            string   `json:"projectName"`
	PlatformName           string   `json:"platformName"`
	TargetFrameworkName    string   `json:"targetFrameworkName"`
	TargetFrameworkVersion string   `json:"targetFrameworkVersion"`
	Targets                []int    `json:"targets"`
	Tasks                  []int    `json:"tasks"`
}

type targetDoc struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	Executed        bool     `json:"executed"`
	IfCondition     string   `json:"ifCondition,omitempty"`
	UnlessCondition string   `json:"unlessCondition,omitempty"`
	Description     string   `json:"description,omitempty"`
	Dependencies    []string `json:"dependencies"`
}

type taskDoc struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Type            domain.TaskType `json:"type"`
	Location        string          `json:"location"`
	Target          int             `json:"target,omitempty"`
	FailOnError     bool            `json:"failOnError"`
	ExtraProperties map[string]any  `json:"extraProperties,omitempty"`
}

// encode flattens build into a document. Ids start at 1; 0 means "no target".
func encode(build *domain.Build) (*document, error) {
	doc := &document{
		Version:  documentVersion,
		Projects: make([]projectDoc, 0, len(build.Projects)),
		Targets:  []targetDoc{},
		Tasks:    make([]taskDoc, 0, len(build.TaskOrder)),
	}

	targetIDs := make(map[*domain.Target]int)
	targetID := func(t *domain.Target) int {
		if t == nil {
			return 0
		}
		if id, ok := targetIDs[t]; ok {
			return id
		}
		id := len(doc.Targets) + 1
		targetIDs[t] = id
		doc.Targets = append(doc.Targets, targetDoc{
			ID:              id,
			Name:            t.Name,
			Location:        t.Location,
			Executed:        t.Executed,
			IfCondition:     t.IfCondition,
			UnlessCondition: t.UnlessCondition,
			Description:     t.Description,
			Dependencies:    nonNil(t.Dependencies),
		})
		return id
	}

	for _, p := range build.Projects {
		for _, t := range p.Targets {
			targetID(t)
		}
	}

	taskIDs := make(map[*domain.Task]int, len(build.TaskOrder))
	for i, t := range build.TaskOrder {
		taskIDs[t] = i + 1
		doc.Tasks = append(doc.Tasks, taskDoc{
			ID:              i + 1,
			Name:            t.Name,
			Type:            t.Type,
			Location:        t.Location,
			Target:          targetID(t.Target),
			FailOnError:     t.FailOnError,
			ExtraProperties: t.ExtraProperties,
		})
	}

	for _, p := range build.Projects {
		pd := projectDoc{
			BaseDirectory:          p.BaseDirectory,
			BuildFileLocalName:     p.BuildFileLocalName,
			BuildFileURI:           p.BuildFileURI,
			BuildTargets:           nonNil(p.BuildTargets),
			ProjectName:            p.ProjectName,
			PlatformName:           p.PlatformName,
			TargetFrameworkName:    p.TargetFrameworkName,
			TargetFrameworkVersion: p.TargetFrameworkVersion,
			Targets:                make([]int, 0, len(p.Targets)),
			Tasks:                  make([]int, 0, len(p.Tasks)),
		}
		for _, t := range p.Targets {
			pd.Targets = append(pd.Targets, targetIDs[t])
		}
		for _, t := range p.Tasks {
			id, ok := taskIDs[t]
			if !ok {
				return nil, zerr.With(domain.ErrSnapshotMarshalFailed, "task_not_in_order", t.Name)
			}
			pd.Tasks = append(pd.Tasks, id)
		}
		doc.Projects = append(doc.Projects, pd)
	}

	return doc, nil
}

// decode rebuilds a domain.Build, resolving every id to a single shared instance.
func decode(doc *document) (*domain.Build, error) {
	if doc == nil {
		return nil, zerr.With(domain.ErrSnapshotMalformed, "reason", "empty document")
	}
	if doc.Version != documentVersion {
		return nil, zerr.With(domain.ErrSnapshotMalformed, "version", doc.Version)
	}

	targets := make(map[int]*domain.Target, len(doc.Targets))
	for _, td := range doc.Targets {
		if td.ID <= 0 {
			return nil, zerr.With(domain.ErrSnapshotMalformed, "target_id", td.ID)
		}
		if _, dup := targets[td.ID]; dup {
			return nil, zerr.With(domain.ErrSnapshotMalformed, "duplicate_target_id", td.ID)
		}
		targets[td.ID] = &domain.Target{
			Name:            td.Name,
			Location:        td.Location,
			Executed:        td.Executed,
			IfCondition:     td.IfCondition,
			UnlessCondition: td.UnlessCondition,
			Description:     td.Description,
			Dependencies:    td.Dependencies,
		}
	}

	build := &domain.Build{
		Projects:  make([]*domain.Project, 0, len(doc.Projects)),
		TaskOrder: make([]*domain.Task, 0, len(doc.Tasks)),
	}
	tasks := make(map[int]*domain.Task, len(doc.Tasks))
	taskTargets := make(map[int]int, len(doc.Tasks))
	for _, td := range doc.Tasks {
		if td.ID <= 0 {
			return nil, zerr.With(domain.ErrSnapshotMalformed, "task_id", td.ID)
		}
		if _, dup := tasks[td.ID]; dup {
			return nil, zerr.With(domain.ErrSnapshotMalformed, "duplicate_task_id", td.ID)
		}
		task := &domain.Task{
			Name:            td.Name,
			Type:            td.Type,
			Location:        td.Location,
			FailOnError:     td.FailOnError,
			ExtraProperties: td.ExtraProperties,
		}
		if td.Target != 0 {
			target, ok := targets[td.Target]
			if !ok {
				return nil, zerr.With(domain.ErrSnapshotMalformed, "unknown_target_id", td.Target)
			}
			task.Target = target
			taskTargets[td.ID] = td.Target
		}
		if task.ExtraProperties == nil {
			task.ExtraProperties = map[string]any{}
		}
		tasks[td.ID] = task
		build.TaskOrder = append(build.TaskOrder, task)
	}

	ownedTargets := make(map[int]bool, len(targets))
	ownedTasks := make(map[int]bool, len(tasks))
	for _, pd := range doc.Projects {
		p := &domain.Project{
			BaseDirectory:          pd.BaseDirectory,
			BuildFileLocalName:     pd.BuildFileLocalName,
			BuildFileURI:           pd.BuildFileURI,
			BuildTargets:           pd.BuildTargets,
			ProjectName:            pd.ProjectName,
			PlatformName:           pd.PlatformName,
			TargetFrameworkName:    pd.TargetFrameworkName,
			TargetFrameworkVersion: pd.TargetFrameworkVersion,
		}
		projectTargets := make(map[int]bool, len(pd.Targets))
		for _, id := range pd.Targets {
			target, ok := targets[id]
			if !ok || ownedTargets[id] {
				return nil, zerr.With(domain.ErrSnapshotMalformed, "project_target_id", id)
			}
			ownedTargets[id] = true
			projectTargets[id] = true
			p.Targets = append(p.Targets, target)
		}
		for _, id := range pd.Tasks {
			task, ok := tasks[id]
			if !ok || ownedTasks[id] {
				return nil, zerr.With(domain.ErrSnapshotMalformed, "project_task_id", id)
			}
			// A task runs inside a target of its own project.
			if tid, ok := taskTargets[id]; ok && !projectTargets[tid] {
				return nil, zerr.With(zerr.With(domain.ErrSnapshotMalformed, "task_id", id), "foreign_target_id", tid)
			}
			ownedTasks[id] = true
			p.Tasks = append(p.Tasks, task)
		}
		build.Projects = append(build.Projects, p)
	}

	if len(ownedTasks) != len(tasks) {
		return nil, zerr.With(domain.ErrSnapshotMalformed, "orphan_tasks", len(tasks)-len(ownedTasks))
	}

	return build, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
