package domain

// Task is one executed build step.
// Target is shared with the owning project's target list; it is nil when the
// task ran outside any target.
type Task struct {
	Name        string
	Type        TaskType
	Location    string
	Target      *Target
	FailOnError bool

	// ExtraProperties holds the captured attributes of the concrete task type
	// as JSON-like values (string, float64, bool, nil, []any, map[string]any).
	ExtraProperties map[string]any
}
