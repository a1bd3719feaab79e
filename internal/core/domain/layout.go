package domain

const (
	// ConfigFileName is the name of the optional settings file.
	ConfigFileName = "buildviz.yaml"

	// ConfigVersion is the only settings file version understood.
	ConfigVersion = "1"

	// DefaultDestinationProperty is the project property naming the snapshot destination.
	DefaultDestinationProperty = "buildviz.logfile"

	// DefaultWrapWidth is the column at which long attribute values are wrapped.
	DefaultWrapWidth = 40

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
