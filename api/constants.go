package api

import "time"

const (
	// StagedFileTTL is how long uploaded and produced files stay in the temp dir
	StagedFileTTL = 1 * time.Hour

	// SweepInterval is how often the temp dir is swept for expired files
	SweepInterval = 10 * time.Minute

	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// MaxErrorMessageLength truncates tool errors returned to clients
	MaxErrorMessageLength = 200
)
