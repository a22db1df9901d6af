package log

// Attribute keys for structured log records.
const (
	ApplyCommand = "apply_command"
	CheckCommand = "check_command"
	Dir          = "dir"
	Error        = "error"
	Executor     = "executor"
	Kind         = "kind"
	Mode         = "mode"
	Outcome      = "outcome"
	Path         = "path"
	Root         = "root"
)
