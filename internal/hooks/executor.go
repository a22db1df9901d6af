package hooks

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/yaklabco/prepush/internal/log"
)

// Kind names a supported executor.
type Kind string

// Executor kinds.
const (
	KindAuto   Kind = "auto"
	KindGradle Kind = "gradle"
	KindMaven  Kind = "maven"
	KindCustom Kind = "custom"
)

// Default Spotless tasks per build tool.
const (
	GradleCheckCommand = "spotlessCheck"
	GradleApplyCommand = "spotlessApply"
	MavenCheckCommand  = "spotless:check"
	MavenApplyCommand  = "spotless:apply"
)

const osWindows = "windows"

var (
	// ErrUnknownExecutor is returned for an executor kind outside Kinds().
	ErrUnknownExecutor = errors.New("unknown executor")

	// ErrNoExecutorDetected is returned when auto-detection finds no build tool.
	ErrNoExecutorDetected = errors.New("no supported build tool detected")

	// ErrIncompleteCustomExecutor is returned when a custom executor lacks
	// its command, check command or apply command.
	ErrIncompleteCustomExecutor = errors.New("custom executor requires command, check command and apply command")
)

// Executor is the tool a pre-push hook invokes to check and fix formatting.
// The set of implementations is closed: Gradle, Maven and Custom.
type Executor interface {
	// Kind identifies the variant.
	Kind() Kind

	// Available reports whether the executor can run in this repository.
	// Implementations log their own diagnostics when it cannot.
	Available() bool

	// Command is the executable written into the hook.
	Command() string

	// CheckCommand is passed to Command to detect violations.
	CheckCommand() string

	// ApplyCommand is passed to Command to fix violations.
	ApplyCommand() string

	sealed()
}

// LookPathFunc resolves an executable name on PATH.
type LookPathFunc func(file string) (string, error)

// Kinds returns the concrete executor kinds in display order.
func Kinds() []Kind {
	return []Kind{KindGradle, KindMaven, KindCustom}
}

// ParseKind converts a user-supplied name into a Kind. An empty name means KindAuto.
func ParseKind(name string) (Kind, error) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(name)))
	if normalized == "" {
		return KindAuto, nil
	}
	if !lo.Contains(append(Kinds(), KindAuto), normalized) {
		return "", fmt.Errorf("%w: %q", ErrUnknownExecutor, name)
	}
	return normalized, nil
}

//nolint:gochecknoglobals // lookup tables for build tool detection
var (
	gradleProjectFiles = []string{"gradlew", "gradlew.bat", "build.gradle", "build.gradle.kts", "settings.gradle", "settings.gradle.kts"}
	mavenProjectFiles  = []string{"mvnw", "mvnw.cmd", "pom.xml"}
)

// DetectKind inspects root for a build tool. Gradle wins over Maven when both are present.
func DetectKind(fs afero.Fs, root string) (Kind, error) {
	present := func(name string) bool {
		exists, err := afero.Exists(fs, filepath.Join(root, name))
		return err == nil && exists
	}

	switch {
	case lo.ContainsBy(gradleProjectFiles, present):
		return KindGradle, nil
	case lo.ContainsBy(mavenProjectFiles, present):
		return KindMaven, nil
	default:
		return "", fmt.Errorf("%w in %s", ErrNoExecutorDetected, root)
	}
}

// ExecutorParams configures NewExecutor.
type ExecutorParams struct {
	// Kind selects the variant. KindAuto (or empty) detects it from Root.
	Kind Kind

	// Root is the repository root the hook runs in.
	Root string

	// Command is the executable for KindCustom. Ignored otherwise.
	Command string

	// CheckCommand and ApplyCommand override the variant defaults when set.
	CheckCommand string
	ApplyCommand string

	// Logger receives availability diagnostics. Defaults to a no-op logger.
	Logger Logger

	// Fs is used to look for wrapper scripts. Defaults to the OS filesystem.
	Fs afero.Fs

	// LookPath resolves global executables. Defaults to exec.LookPath.
	LookPath LookPathFunc
}

// NewExecutor builds the executor variant described by params.
func NewExecutor(params ExecutorParams) (Executor, error) {
	if params.Logger == nil {
		params.Logger = nopLogger{}
	}
	if params.Fs == nil {
		params.Fs = afero.NewOsFs()
	}
	if params.LookPath == nil {
		params.LookPath = exec.LookPath
	}

	kind := params.Kind
	if kind == "" || kind == KindAuto {
		detected, err := DetectKind(params.Fs, params.Root)
		if err != nil {
			return nil, err
		}
		kind = detected
	}

	slog.Debug("building executor",
		slog.String(log.Kind, string(kind)),
		slog.String(log.Root, params.Root))

	switch kind {
	case KindGradle:
		return NewGradle(params), nil
	case KindMaven:
		return NewMaven(params), nil
	case KindCustom:
		if params.Command == "" || params.CheckCommand == "" || params.ApplyCommand == "" {
			return nil, ErrIncompleteCustomExecutor
		}
		return NewCustom(params), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExecutor, kind)
	}
}

// wrapped is a build tool that ships a wrapper script in the project root
// and may also be installed globally.
type wrapped struct {
	root     string
	fs       afero.Fs
	logger   Logger
	lookPath LookPathFunc

	tool    string
	wrapper string
	global  string
	check   string
	apply   string
}

func newWrapped(params ExecutorParams, tool, wrapper, global, check, apply string) wrapped {
	if params.CheckCommand != "" {
		check = params.CheckCommand
	}
	if params.ApplyCommand != "" {
		apply = params.ApplyCommand
	}
	return wrapped{
		root:     params.Root,
		fs:       params.Fs,
		logger:   params.Logger,
		lookPath: params.LookPath,
		tool:     tool,
		wrapper:  wrapper,
		global:   global,
		check:    check,
		apply:    apply,
	}
}

func (w *wrapped) wrapperPath() string {
	return filepath.Join(w.root, w.wrapper)
}

func (w *wrapped) hasWrapper() bool {
	info, err := w.fs.Stat(w.wrapperPath())
	return err == nil && !info.IsDir()
}

func (w *wrapped) hasGlobal() bool {
	_, err := w.lookPath(w.global)
	return err == nil
}

// Available prefers the wrapper and falls back to a global install.
func (w *wrapped) Available() bool {
	if w.hasWrapper() {
		return true
	}

	w.logger.Infof("%s wrapper is not installed, using global %s", w.tool, w.global)
	if w.hasGlobal() {
		return true
	}

	w.logger.Errorf("%s wrapper and global %s are not installed", w.tool, w.global)
	return false
}

// Command returns the wrapper's absolute path if present, the global name otherwise.
func (w *wrapped) Command() string {
	if w.hasWrapper() {
		return w.wrapperPath()
	}
	return w.global
}

func (w *wrapped) CheckCommand() string { return w.check }

func (w *wrapped) ApplyCommand() string { return w.apply }

// Gradle runs Spotless through gradlew or a global gradle.
type Gradle struct {
	wrapped
}

// NewGradle returns a Gradle executor for params.Root.
func NewGradle(params ExecutorParams) *Gradle {
	wrapper := "gradlew"
	if runtime.GOOS == osWindows {
		wrapper = "gradlew.bat"
	}
	return &Gradle{newWrapped(params, "Gradle", wrapper, "gradle", GradleCheckCommand, GradleApplyCommand)}
}

func (*Gradle) Kind() Kind { return KindGradle }

func (*Gradle) sealed() {}

// Maven runs Spotless through mvnw or a global mvn.
type Maven struct {
	wrapped
}

// NewMaven returns a Maven executor for params.Root.
func NewMaven(params ExecutorParams) *Maven {
	wrapper := "mvnw"
	if runtime.GOOS == osWindows {
		wrapper = "mvnw.cmd"
	}
	return &Maven{newWrapped(params, "Maven", wrapper, "mvn", MavenCheckCommand, MavenApplyCommand)}
}

func (*Maven) Kind() Kind { return KindMaven }

func (*Maven) sealed() {}

// Custom runs arbitrary check and apply commands through a user-chosen executable.
type Custom struct {
	root     string
	fs       afero.Fs
	logger   Logger
	lookPath LookPathFunc

	command string
	check   string
	apply   string
}

// NewCustom returns a Custom executor. Callers should prefer NewExecutor,
// which rejects incomplete parameters.
func NewCustom(params ExecutorParams) *Custom {
	return &Custom{
		root:     params.Root,
		fs:       params.Fs,
		logger:   params.Logger,
		lookPath: params.LookPath,
		command:  params.Command,
		check:    params.CheckCommand,
		apply:    params.ApplyCommand,
	}
}

func (*Custom) Kind() Kind { return KindCustom }

// Available accepts a command found on PATH or a path to an existing file,
// relative paths being resolved against the repository root.
func (c *Custom) Available() bool {
	if strings.ContainsRune(c.command, '/') || strings.ContainsRune(c.command, filepath.Separator) {
		path := c.command
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.root, path)
		}
		if info, err := c.fs.Stat(path); err == nil && !info.IsDir() {
			return true
		}
	} else if _, err := c.lookPath(c.command); err == nil {
		return true
	}

	c.logger.Errorf("Executor %s not found", c.command)
	return false
}

func (c *Custom) Command() string { return c.command }

func (c *Custom) CheckCommand() string { return c.check }

func (c *Custom) ApplyCommand() string { return c.apply }

func (*Custom) sealed() {}
