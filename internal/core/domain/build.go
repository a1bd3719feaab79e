// Package domain holds the event model captured from an observed build.
package domain

// Build is the root aggregate of a recorded build.
// TaskOrder holds every task of every project exactly once, in the order the
// task start notifications were observed.
type Build struct {
	Projects  []*Project
	TaskOrder []*Task
}

// NewBuild creates an empty Build.
func NewBuild() *Build {
	return &Build{}
}

// TaskIndex returns the position of task in the global execution order, or -1.
func (b *Build) TaskIndex(task *Task) int {
	for i, t := range b.TaskOrder {
		if t == task {
			return i
		}
	}
	return -1
}

// TaskCount returns the number of tasks across all projects.
func (b *Build) TaskCount() int {
	n := 0
	for _, p := range b.Projects {
		n += len(p.Tasks)
	}
	return n
}

// Project is one build-script invocation.
type Project struct {
	BaseDirectory          string
	BuildFileLocalName     string
	BuildFileURI           string
	BuildTargets           []string
	ProjectName            string
	PlatformName           string
	TargetFrameworkName    string
	TargetFrameworkVersion string

	Targets []*Target
	Tasks   []*Task
}

// TasksOf returns the tasks of the project whose target is target.
// A nil target selects the tasks that run outside any target.
func (p *Project) TasksOf(target *Target) []*Task {
	var tasks []*Task
	for _, t := range p.Tasks {
		if t.Target == target {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Target is a named unit of work within a project.
type Target struct {
	Name            string
	Location        string
	Executed        bool
	IfCondition     string
	UnlessCondition string
	Description     string
	Dependencies    []string
}
