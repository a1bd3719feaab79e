package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownProject is returned when a notification names a project that never started.
	ErrUnknownProject = zerr.New("unknown project")

	// ErrUnknownTarget is returned when a notification names a target that never started.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrDuplicateProject is returned when a project start names an identifier already in use.
	ErrDuplicateProject = zerr.New("project already started")

	// ErrDuplicateTarget is returned when a target start names an identifier already in use.
	ErrDuplicateTarget = zerr.New("target already started")

	// ErrInvalidSnapshot is the data-format error every snapshot load failure matches.
	ErrInvalidSnapshot = zerr.New("invalid build snapshot")

	// ErrSnapshotReadFailed is returned when the snapshot cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read build snapshot")

	// ErrSnapshotUnmarshalFailed is returned when the snapshot cannot be decoded.
	ErrSnapshotUnmarshalFailed = zerr.New("failed to unmarshal build snapshot")

	// ErrSnapshotMalformed is returned when a decoded snapshot violates the model invariants.
	ErrSnapshotMalformed = zerr.New("malformed build snapshot")

	// ErrSnapshotMarshalFailed is returned when the snapshot cannot be encoded.
	ErrSnapshotMarshalFailed = zerr.New("failed to marshal build snapshot")

	// ErrSnapshotWriteFailed is returned when the snapshot cannot be written.
	ErrSnapshotWriteFailed = zerr.New("failed to write build snapshot")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidWrapWidth is returned when the configured wrap width is not positive.
	ErrInvalidWrapWidth = zerr.New("wrap width must be positive")

	// ErrEventDecodeFailed is returned when a line of the event stream cannot be decoded.
	ErrEventDecodeFailed = zerr.New("failed to decode event")

	// ErrUnknownEvent is returned when the event stream names an unknown event.
	ErrUnknownEvent = zerr.New("unknown event")

	// ErrEventStreamFailed is returned when the event stream cannot be read.
	ErrEventStreamFailed = zerr.New("failed to read event stream")

	// ErrRenderFailed is returned when the graph cannot be written.
	ErrRenderFailed = zerr.New("failed to render graph")

	// ErrWatchFailed is returned when the snapshot file cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch build snapshot")
)
