// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad reference, unknown list).
	UserError = 1

	// AuthError indicates missing or unusable Google credentials.
	AuthError = 2

	// ConfigError indicates an unreadable or invalid configuration.
	// It shares a code with AuthError.
	ConfigError = AuthError

	// BackendError indicates a storage, export or network error.
	BackendError = 3
)
