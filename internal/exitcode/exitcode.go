// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, bad reference).
	UserError = 1

	// ConfigError indicates an unusable configuration (unknown store kind, missing dsn).
	ConfigError = 2

	// StoreError indicates the persistent store could not be read or written.
	StoreError = 3
)
