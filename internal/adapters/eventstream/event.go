package eventstream

import (
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
)

// Event names understood on the stream.
const (
	EventProjectStarted  = "projectStarted"
	EventProjectFinished = "projectFinished"
	EventTargetStarted   = "targetStarted"
	EventTargetFinished  = "targetFinished"
	EventTaskStarted     = "taskStarted"
	EventTaskFinished    = "taskFinished"
	EventMessageLogged   = "messageLogged"
)

// Record is one line of the stream. Only the fields of the named event are used.
type Record struct {
	Event   string `json:"event"`
	Project string `json:"project"`
	Target  string `json:"target,omitempty"`
	Task    string `json:"task,omitempty"`
	Parent  string `json:"parent,omitempty"`

	BaseDirectory          string   `json:"baseDirectory,omitempty"`
	BuildFileLocalName     string   `json:"buildFileLocalName,omitempty"`
	BuildFileURI           string   `json:"buildFileUri,omitempty"`
	BuildTargets           []string `json:"buildTargets,omitempty"`
	ProjectName            string   `json:"projectName,omitempty"`
	PlatformName           string   `json:"platformName,omitempty"`
	TargetFrameworkName    string   `json:"targetFrameworkName,omitempty"`
	TargetFrameworkVersion string   `json:"targetFrameworkVersion,omitempty"`

	Name            string   `json:"name,omitempty"`
	Location        string   `json:"location,omitempty"`
	Executed        bool     `json:"executed,omitempty"`
	IfCondition     string   `json:"ifCondition,omitempty"`
	UnlessCondition string   `json:"unlessCondition,omitempty"`
	Description     string   `json:"description,omitempty"`
	Dependencies    []string `json:"dependencies,omitempty"`

	Type        string `json:"type,omitempty"`
	FailOnError bool   `json:"failOnError,omitempty"`

	// Properties holds project properties for projectStarted and task
	// attributes for taskStarted.
	Properties map[string]any `json:"properties,omitempty"`

	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// dispatch delivers r to l. ok is false for an unknown event name.
func (r *Record) dispatch(l ports.BuildListener) (ok bool, err error) {
	project := domain.ProjectID(r.Project)

	switch r.Event {
	case EventProjectStarted:
		return true, l.ProjectStarted(domain.ProjectStarted{
			Project:            project,
			BaseDirectory:      r.BaseDirectory,
			BuildFileLocalName: r.BuildFileLocalName,
			BuildFileURI:       r.BuildFileURI,
			BuildTargets:       r.BuildTargets,
			ProjectName:        r.ProjectName,
			PlatformName:       r.PlatformName,
			TargetFramework: domain.TargetFramework{
				Name:    r.TargetFrameworkName,
				Version: r.TargetFrameworkVersion,
			},
			Properties: stringProperties(r.Properties),
		})
	case EventProjectFinished:
		return true, l.ProjectFinished(domain.ProjectFinished{Project: project})
	case EventTargetStarted:
		return true, l.TargetStarted(domain.TargetStarted{
			Project:         project,
			Target:          domain.TargetID(r.Target),
			Name:            r.Name,
			Location:        r.Location,
			Executed:        r.Executed,
			IfCondition:     r.IfCondition,
			UnlessCondition: r.UnlessCondition,
			Description:     r.Description,
			Dependencies:    r.Dependencies,
		})
	case EventTargetFinished:
		return true, l.TargetFinished(domain.TargetFinished{Project: project, Target: domain.TargetID(r.Target)})
	case EventTaskStarted:
		e := domain.TaskStarted{
			Project:     project,
			Task:        domain.TaskID(r.Task),
			Parent:      domain.TargetID(r.Parent),
			Name:        r.Name,
			Type:        r.Type,
			Location:    r.Location,
			FailOnError: r.FailOnError,
		}
		if r.Properties != nil {
			e.Value = domain.PropertyMap(r.Properties)
		}
		return true, l.TaskStarted(e)
	case EventTaskFinished:
		return true, l.TaskFinished(domain.TaskFinished{Project: project, Task: domain.TaskID(r.Task)})
	case EventMessageLogged:
		return true, l.MessageLogged(domain.MessageLogged{
			Project: project,
			Level:   domain.ParseLogLevel(r.Level),
			Message: r.Message,
		})
	default:
		return false, nil
	}
}

// stringProperties keeps the string-valued entries of props.
func stringProperties(props map[string]any) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
