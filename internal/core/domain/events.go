package domain

// ProjectID identifies a project within a single build, as assigned by the host engine.
type ProjectID string

// TargetID identifies a target within a single build, as assigned by the host engine.
type TargetID string

// TaskID identifies a task within a single build, as assigned by the host engine.
type TaskID string

// TargetFramework names the framework a project is built against.
type TargetFramework struct {
	Name    string
	Version string
}

// ProjectStarted is delivered when a build-script invocation begins.
type ProjectStarted struct {
	Project            ProjectID
	BaseDirectory      string
	BuildFileLocalName string
	BuildFileURI       string
	BuildTargets       []string
	ProjectName        string
	PlatformName       string
	TargetFramework    TargetFramework
	// Properties are the configuration properties visible to the project.
	Properties map[string]string
}

// ProjectFinished is delivered when a build-script invocation ends.
type ProjectFinished struct {
	Project ProjectID
}

// TargetStarted is delivered when a target begins.
type TargetStarted struct {
	Project         ProjectID
	Target          TargetID
	Name            string
	Location        string
	Executed        bool
	IfCondition     string
	UnlessCondition string
	Description     string
	Dependencies    []string
}

// TargetFinished is delivered when a target ends.
type TargetFinished struct {
	Project ProjectID
	Target  TargetID
}

// TaskStarted is delivered when a task begins.
// Parent is empty when the task's immediate parent is not a target.
type TaskStarted struct {
	Project     ProjectID
	Task        TaskID
	Parent      TargetID
	Name        string
	Type        string
	Location    string
	FailOnError bool
	// Value is the host's task object. Its attributes are captured as extra
	// properties by a PropertyExtractor.
	Value any
}

// TaskFinished is delivered when a task ends.
type TaskFinished struct {
	Project ProjectID
	Task    TaskID
}

// MessageLogged is delivered for every message the host logs.
type MessageLogged struct {
	Project ProjectID
	Level   LogLevel
	Message string
}
