package domain

import "unique"

// TaskType is the fully-qualified type identifier of a task.
// Builds repeat a handful of type identifiers across thousands of tasks, so the
// value is interned.
type TaskType struct {
	h unique.Handle[string]
}

// NewTaskType interns the given type identifier.
func NewTaskType(s string) TaskType {
	return TaskType{h: unique.Make(s)}
}

// String returns the type identifier.
func (t TaskType) String() string {
	if t == (TaskType{}) {
		return ""
	}
	return t.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (t TaskType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TaskType) UnmarshalText(text []byte) error {
	*t = NewTaskType(string(text))
	return nil
}
