package hooks

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/yaklabco/prepush/internal/log"
)

// PrePushHook is the only hook the installer manages.
const PrePushHook = "pre-push"

const (
	// dirPerm is the permission mode for created directories.
	dirPerm = 0o755

	// filePerm is the mode a new hook file is created with, before the owner
	// execute bit is added.
	filePerm = 0o644

	// ownerExec is the execute bit granted on a created hook.
	ownerExec = 0o100
)

// Logger receives the installer's user-facing messages.
// *github.com/charmbracelet/log.Logger satisfies it.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Installer writes the managed pre-push block into a repository.
type Installer struct {
	logger   Logger
	root     string
	executor Executor
	fs       afero.Fs
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithFs sets the filesystem the installer operates on.
func WithFs(fs afero.Fs) InstallerOption {
	return func(i *Installer) {
		i.fs = fs
	}
}

// NewInstaller returns an Installer for the working copy at root.
func NewInstaller(logger Logger, root string, executor Executor, opts ...InstallerOption) *Installer {
	if logger == nil {
		logger = nopLogger{}
	}
	installer := &Installer{
		logger:   logger,
		root:     root,
		executor: executor,
		fs:       afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(installer)
	}
	return installer
}

// HookPath returns the path of the pre-push hook under the root.
func (i *Installer) HookPath() string {
	return filepath.Join(i.root, ".git", "hooks", PrePushHook)
}

// Install makes a single attempt to add the managed block to the pre-push hook.
//
// It never returns an error: every problem is reported through the Logger and
// summarised by the returned Outcome. An existing block is left untouched even
// if it was generated for different commands.
func (i *Installer) Install() Outcome {
	outcome := i.install()
	slog.Debug("pre-push hook install finished",
		slog.String(log.Outcome, outcome.String()),
		slog.String(log.Path, i.HookPath()))
	return outcome
}

func (i *Installer) install() Outcome {
	i.logger.Infof("Installing git pre-push hook")

	if !i.isGitRepo() {
		i.logger.Errorf("Git not found in root directory")
		return OutcomeNotGitRepo
	}

	if !i.executor.Available() {
		slog.Debug("executor unavailable",
			slog.String(log.Kind, string(i.executor.Kind())))
		return OutcomeExecutorUnavailable
	}

	hookPath := i.HookPath()
	absPath := absolute(hookPath)

	var content string
	exists, err := afero.Exists(i.fs, hookPath)
	if err != nil {
		i.logger.Errorf("Failed to check pre-push hook file %s: %v", absPath, err)
		return OutcomeFilesystemFailure
	}
	if !exists {
		i.logger.Infof("Git pre-push hook not found, creating it")
		if !i.createHook(hookPath, absPath) {
			return OutcomeFilesystemFailure
		}
		content = Shebang
	}

	existing, err := afero.ReadFile(i.fs, hookPath)
	if err != nil {
		i.logger.Errorf("Failed to read pre-push hook file %s: %v", absPath, err)
		return OutcomeFilesystemFailure
	}
	if HasBlock(string(existing)) {
		i.logger.Infof("Skipping, git pre-push hook already installed %s", absPath)
		return OutcomeAlreadyInstalled
	}

	content += BlockFor(i.executor)
	if err := i.appendHook(hookPath, content); err != nil {
		i.logger.Errorf("Failed to write pre-push hook file %s: %v", absPath, err)
		return OutcomeFilesystemFailure
	}

	i.logger.Infof("Git pre-push hook installed successfully to the file %s", absPath)
	return OutcomeInstalled
}

// Status reports whether the pre-push hook already carries the managed block,
// without modifying anything.
func (i *Installer) Status() (bool, error) {
	data, err := afero.ReadFile(i.fs, i.HookPath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return HasBlock(string(data)), nil
}

// isGitRepo reports whether <root>/.git/config is a regular file.
func (i *Installer) isGitRepo() bool {
	info, err := i.fs.Stat(filepath.Join(i.root, ".git", "config"))
	return err == nil && info.Mode().IsRegular()
}

// createHook creates an empty hook file executable by its owner.
// The O_EXCL create only narrows the race with a concurrent installer; the
// existence check above is not atomic with it.
func (i *Installer) createHook(hookPath, absPath string) bool {
	if err := i.fs.MkdirAll(filepath.Dir(hookPath), dirPerm); err != nil {
		i.logger.Errorf("Failed to create hooks directory %s: %v", filepath.Dir(absPath), err)
		return false
	}

	file, err := i.fs.OpenFile(hookPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		i.logger.Errorf("Failed to create pre-push hook file %s: %v", absPath, err)
		return false
	}
	if err := file.Close(); err != nil {
		i.logger.Errorf("Failed to create pre-push hook file %s: %v", absPath, err)
		return false
	}

	info, err := i.fs.Stat(hookPath)
	if err != nil {
		i.logger.Errorf("Can not make file executable %s: %v", absPath, err)
		return false
	}
	if err := i.fs.Chmod(hookPath, info.Mode().Perm()|ownerExec); err != nil {
		i.logger.Errorf("Can not make file executable %s: %v", absPath, err)
		return false
	}

	slog.Debug("hook file created",
		slog.String(log.Path, absPath),
		slog.String(log.Mode, (info.Mode().Perm() | ownerExec).String()))
	return true
}

// appendHook appends content to the hook, never truncating it.
func (i *Installer) appendHook(hookPath, content string) (err error) {
	file, err := i.fs.OpenFile(hookPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	_, err = file.WriteString(content)
	return err
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
