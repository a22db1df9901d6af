package hooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// recordingLogger captures formatted installer messages.
type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// stubExecutor is an Executor with fixed answers.
type stubExecutor struct {
	available bool
	command   string
	check     string
	apply     string
	calls     int
}

func (s *stubExecutor) Kind() Kind { return KindCustom }

func (s *stubExecutor) Available() bool {
	s.calls++
	return s.available
}

func (s *stubExecutor) Command() string      { return s.command }
func (s *stubExecutor) CheckCommand() string { return s.check }
func (s *stubExecutor) ApplyCommand() string { return s.apply }
func (*stubExecutor) sealed()                {}

// errInjected is returned by faultyFs for the operations it is told to fail.
var errInjected = errors.New("injected failure")

// faultyFs wraps an afero.Fs and fails selected operations.
type faultyFs struct {
	afero.Fs

	failOpen   bool // Open, used for reads
	failCreate bool // OpenFile with O_CREATE
	failChmod  bool
}

func (f *faultyFs) Open(name string) (afero.File, error) {
	if f.failOpen {
		return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return f.Fs.Open(name)
}

func (f *faultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.failCreate && flag&os.O_CREATE != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *faultyFs) Chmod(name string, mode os.FileMode) error {
	if f.failChmod {
		return &os.PathError{Op: "chmod", Path: name, Err: errInjected}
	}
	return f.Fs.Chmod(name, mode)
}

// memGitRepo returns an in-memory filesystem holding /repo/.git/config.
func memGitRepo(t *testing.T) afero.Fs {
	t.Helper()

	memFs := afero.NewMemMapFs()
	if err := afero.WriteFile(memFs, "/repo/.git/config", []byte("[core]\n"), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	return memFs
}

func newStub() *stubExecutor {
	return &stubExecutor{available: true, command: "toolX", check: "checkCmd", apply: "applyCmd"}
}

// setupRepo creates a directory that looks like a git working copy to the installer.
func setupRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	if err := os.MkdirAll(gitDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte("[core]\n"), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	return root
}

func hookPath(root string) string {
	return filepath.Join(root, ".git", "hooks", PrePushHook)
}

func writeHook(t *testing.T, root, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(hookPath(root)), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(hookPath(root), []byte(content), 0o755); err != nil {
		t.Fatalf("write hook failed: %v", err)
	}
}

func readHook(t *testing.T, root string) string {
	t.Helper()

	data, err := os.ReadFile(hookPath(root))
	if err != nil {
		t.Fatalf("read hook failed: %v", err)
	}
	return string(data)
}
