package main

// Exit codes used by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, not in a repository)
	ExitDataError   = 3 // Data error (malformed refs file, cache rebuild failure)
	ExitAuthError   = 4 // Invalid or missing summarizer API key
)
