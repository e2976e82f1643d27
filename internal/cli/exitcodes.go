package cli

// Exit codes for mdvaultd.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitError indicates the server failed to start or exited with an error.
	ExitError = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)
