package ports

// PropertyExtractor captures the attributes of a host task object.
// Extraction is best effort: attributes that cannot be converted are omitted.
type PropertyExtractor interface {
	// Extract returns the attributes of task as JSON-like values.
	Extract(task any) map[string]any
}
