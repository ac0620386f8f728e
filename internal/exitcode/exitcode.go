// Package exitcode defines exit code constants for the mpp CLI.
package exitcode

const (
	Success      = 0
	GeneralError = 1
	UsageError   = 2
	AuthFailure  = 3
	NotFound     = 4
)
