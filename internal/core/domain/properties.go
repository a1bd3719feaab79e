package domain

// PropertyMap is a task value whose attributes are already in JSON-like form.
// Notification sources that do not have a live task object deliver one.
type PropertyMap map[string]any

// PropertySource is implemented by task values that report their own attributes.
type PropertySource interface {
	BuildProperties() map[string]any
}

// Element carries the attributes every build element exposes.
// Fields promoted from Element are not captured as extra properties.
type Element struct {
	Name     string
	Location string
}

// TaskBase carries the attributes every task exposes.
// Fields promoted from TaskBase are not captured as extra properties.
type TaskBase struct {
	Element
	FailOnError bool
	Verbose     bool
}
