package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/prepush/internal/hooks"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("config warning: %s: %s", w.Field, w.Message)
}

// ValidationResults holds the results of configuration validation.
type ValidationResults struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are validation errors.
func (r ValidationResults) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are validation warnings.
func (r ValidationResults) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ErrorMessage returns a combined error message for all validation errors.
func (r ValidationResults) ErrorMessage() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := lo.Map(r.Errors, func(e ValidationError, _ int) string {
		return e.Error()
	})
	return strings.Join(msgs, "; ")
}

// WriteWarnings writes all warnings to the given writer.
func (r ValidationResults) WriteWarnings(w io.Writer) {
	for _, warn := range r.Warnings {
		_, _ = fmt.Fprintln(w, warn.String())
	}
}

// Validate checks the configuration for errors and warnings.
// Errors are for values the installer cannot act on; warnings are for values
// that will be ignored.
func (c *Config) Validate() ValidationResults {
	var result ValidationResults

	kind, err := c.ExecutorKind()
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "executor",
			Message: fmt.Sprintf("invalid executor %q, must be one of: %s", c.Executor, validExecutorList()),
		})
		return result
	}

	if kind == hooks.KindCustom {
		required := []struct {
			field string
			value string
		}{
			{"command", c.Command},
			{"check_command", c.CheckCommand},
			{"apply_command", c.ApplyCommand},
		}
		for _, req := range required {
			if strings.TrimSpace(req.value) == "" {
				result.Errors = append(result.Errors, ValidationError{
					Field:   req.field,
					Message: "required when executor is custom",
				})
			}
		}
		return result
	}

	if c.Command != "" {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "command",
			Message: fmt.Sprintf("ignored for executor %q, only the custom executor uses it", kind),
		})
	}

	return result
}

// validExecutorList returns a comma-separated list of valid executors.
func validExecutorList() string {
	names := lo.Map(append([]hooks.Kind{hooks.KindAuto}, hooks.Kinds()...), func(k hooks.Kind, _ int) string {
		return string(k)
	})
	return strings.Join(names, ", ")
}
