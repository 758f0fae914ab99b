package main

// Exit codes shared by all ws commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing repository, invalid config)
	ExitDataError   = 3 // Data error (missing artifact, malformed input, misaligned tables)
)
