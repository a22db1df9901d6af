package hooks

import (
	"bytes"
	"log/slog"
	"strings"
	"text/template"

	"github.com/yaklabco/prepush/internal/log"
)

// Markers delimiting the managed block inside a pre-push hook.
const (
	BlockStartMarker = "##### SPOTLESS HOOK START #####"
	BlockEndMarker   = "##### SPOTLESS HOOK END #####"
)

// Shebang is written to a hook file created by the installer.
const Shebang = "#!/bin/sh\n"

// blockParams holds the values interpolated into blockTemplate.
type blockParams struct {
	// Executor is the command the hook invokes (e.g. "/repo/gradlew", "mvn").
	Executor string

	// CheckCommand is passed to Executor to detect violations.
	CheckCommand string

	// ApplyCommand is passed to Executor to fix violations.
	ApplyCommand string
}

// blockTemplate must stay byte-for-byte stable: installed hooks are
// recognised by BlockStartMarker and external tooling greps the shape.
const blockTemplate = `

##### SPOTLESS HOOK START #####
SPOTLESS_EXECUTOR={{.Executor}}
if ! $SPOTLESS_EXECUTOR {{.CheckCommand}} ; then
    echo 1>&2 "spotless found problems, running {{.ApplyCommand}}; commit the result and re-push"
    $SPOTLESS_EXECUTOR {{.ApplyCommand}}
    exit 1
fi
##### SPOTLESS HOOK END #####

`

//nolint:gochecknoglobals // template is parsed once at init
var blockTmpl = template.Must(template.New("block").Parse(blockTemplate))

// RenderBlock returns the managed pre-push block for the given executor and
// commands. The strings are interpolated verbatim, without shell quoting.
func RenderBlock(executor, commandCheck, commandApply string) string {
	return generateBlock(blockParams{
		Executor:     executor,
		CheckCommand: commandCheck,
		ApplyCommand: commandApply,
	})
}

// generateBlock panics if template execution fails (indicates a programming error).
func generateBlock(params blockParams) string {
	slog.Debug("generating hook block",
		slog.String(log.Executor, params.Executor),
		slog.String(log.CheckCommand, params.CheckCommand),
		slog.String(log.ApplyCommand, params.ApplyCommand))

	var buf bytes.Buffer
	if err := blockTmpl.Execute(&buf, params); err != nil {
		panic("hooks: template execution failed: " + err.Error())
	}
	return buf.String()
}

// BlockFor renders the managed block for an executor.
func BlockFor(executor Executor) string {
	return RenderBlock(executor.Command(), executor.CheckCommand(), executor.ApplyCommand())
}

// HasBlock reports whether content already carries a managed block.
// Only the start marker is considered; the commands inside are not compared.
func HasBlock(content string) bool {
	return strings.Contains(content, BlockStartMarker)
}
