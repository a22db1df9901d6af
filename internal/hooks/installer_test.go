package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall_FreshRepo(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	logger := &recordingLogger{}

	outcome := NewInstaller(logger, root, newStub()).Install()
	require.Equal(t, OutcomeInstalled, outcome)
	assert.Empty(t, logger.errors)

	content := readHook(t, root)
	assert.True(t, strings.HasPrefix(content, "#!/bin/sh\n"))
	assert.Equal(t, Shebang+RenderBlock("toolX", "checkCmd", "applyCmd"), content)
	assert.Equal(t, 1, strings.Count(content, BlockStartMarker))
	assert.Equal(t, 1, strings.Count(content, BlockEndMarker))

	info, err := os.Stat(hookPath(root))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100, "hook should be executable by owner, got %v", info.Mode())
	assert.Zero(t, info.Mode().Perm()&0o011, "group/other execute should stay unset, got %v", info.Mode())

	absHook, err := filepath.Abs(hookPath(root))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Installing git pre-push hook",
		"Git pre-push hook not found, creating it",
		"Git pre-push hook installed successfully to the file " + absHook,
	}, logger.infos)
}

func TestInstall_Idempotent(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	logger := &recordingLogger{}
	installer := NewInstaller(logger, root, newStub())

	require.Equal(t, OutcomeInstalled, installer.Install())
	first := readHook(t, root)

	require.Equal(t, OutcomeAlreadyInstalled, installer.Install())
	assert.Equal(t, first, readHook(t, root))
	assert.Empty(t, logger.errors)

	absHook, err := filepath.Abs(hookPath(root))
	require.NoError(t, err)
	assert.Contains(t, logger.infos, "Skipping, git pre-push hook already installed "+absHook)
}

func TestInstall_NotGitRepo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	logger := &recordingLogger{}
	stub := newStub()

	outcome := NewInstaller(logger, root, stub).Install()
	assert.Equal(t, OutcomeNotGitRepo, outcome)
	assert.Equal(t, []string{"Git not found in root directory"}, logger.errors)
	assert.Zero(t, stub.calls, "executor should not be consulted outside a repository")

	_, err := os.Stat(hookPath(root))
	assert.True(t, os.IsNotExist(err), "hook should not be created, stat err = %v", err)
}

func TestInstall_GitConfigIsDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "config"), 0o755))

	outcome := NewInstaller(&recordingLogger{}, root, newStub()).Install()
	assert.Equal(t, OutcomeNotGitRepo, outcome)

	_, err := os.Stat(hookPath(root))
	assert.True(t, os.IsNotExist(err))
}

func TestInstall_ExecutorUnavailable(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	logger := &recordingLogger{}
	stub := newStub()
	stub.available = false

	outcome := NewInstaller(logger, root, stub).Install()
	assert.Equal(t, OutcomeExecutorUnavailable, outcome)
	assert.Equal(t, 1, stub.calls)
	assert.Empty(t, logger.errors, "the executor owns the diagnostic")

	_, err := os.Stat(hookPath(root))
	assert.True(t, os.IsNotExist(err), "hook should not be created, stat err = %v", err)
}

func TestInstall_PreservesForeignContent(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	foreign := "#!/bin/bash\n# run the test suite\nmake test || exit 1\n"
	writeHook(t, root, foreign)

	outcome := NewInstaller(&recordingLogger{}, root, newStub()).Install()
	require.Equal(t, OutcomeInstalled, outcome)

	content := readHook(t, root)
	assert.Equal(t, foreign+RenderBlock("toolX", "checkCmd", "applyCmd"), content)
	assert.Equal(t, 1, strings.Count(content, "#!"), "no second shebang for an existing hook")
}

func TestInstall_ExistingEmptyHook(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	writeHook(t, root, "")

	outcome := NewInstaller(&recordingLogger{}, root, newStub()).Install()
	require.Equal(t, OutcomeInstalled, outcome)
	assert.Equal(t, RenderBlock("toolX", "checkCmd", "applyCmd"), readHook(t, root))
}

func TestInstall_MarkerShortCircuit(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	existing := "#!/bin/sh\necho before\n" +
		RenderBlock("/old/gradlew", "oldCheck", "oldApply") +
		"echo after\n"
	writeHook(t, root, existing)

	logger := &recordingLogger{}
	outcome := NewInstaller(logger, root, newStub()).Install()
	assert.Equal(t, OutcomeAlreadyInstalled, outcome)
	assert.Equal(t, existing, readHook(t, root), "first write wins: the old block is kept")
	assert.Empty(t, logger.errors)
}

func TestInstall_MemFs(t *testing.T) {
	t.Parallel()

	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/repo/.git/config", []byte("[core]\n"), 0o644))

	installer := NewInstaller(&recordingLogger{}, "/repo", newStub(), WithFs(memFs))
	require.Equal(t, OutcomeInstalled, installer.Install())

	info, err := memFs.Stat("/repo/.git/hooks/pre-push")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o744), info.Mode().Perm())

	data, err := afero.ReadFile(memFs, "/repo/.git/hooks/pre-push")
	require.NoError(t, err)
	assert.Equal(t, Shebang+RenderBlock("toolX", "checkCmd", "applyCmd"), string(data))
}

func TestInstall_CreateFailure(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/repo/.git/config", []byte("[core]\n"), 0o644))
	logger := &recordingLogger{}

	outcome := NewInstaller(logger, "/repo", newStub(), WithFs(afero.NewReadOnlyFs(base))).Install()
	assert.Equal(t, OutcomeFilesystemFailure, outcome)
	assert.True(t, outcome.Failed())
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "/repo/.git/hooks")

	exists, err := afero.Exists(base, "/repo/.git/hooks/pre-push")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInstall_AppendFailure(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/repo/.git/config", []byte("[core]\n"), 0o644))
	require.NoError(t, afero.WriteFile(base, "/repo/.git/hooks/pre-push", []byte("#!/bin/sh\n"), 0o755))
	logger := &recordingLogger{}

	outcome := NewInstaller(logger, "/repo", newStub(), WithFs(afero.NewReadOnlyFs(base))).Install()
	assert.Equal(t, OutcomeFilesystemFailure, outcome)
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "Failed to write pre-push hook file /repo/.git/hooks/pre-push")

	data, err := afero.ReadFile(base, "/repo/.git/hooks/pre-push")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))
}

func TestInstall_HookCreateFailure(t *testing.T) {
	t.Parallel()

	base := memGitRepo(t)
	logger := &recordingLogger{}

	outcome := NewInstaller(logger, "/repo", newStub(), WithFs(&faultyFs{Fs: base, failCreate: true})).Install()
	assert.Equal(t, OutcomeFilesystemFailure, outcome)
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "Failed to create pre-push hook file /repo/.git/hooks/pre-push")
	assert.Contains(t, logger.errors[0], errInjected.Error())

	exists, err := afero.Exists(base, "/repo/.git/hooks/pre-push")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInstall_ChmodFailure(t *testing.T) {
	t.Parallel()

	base := memGitRepo(t)
	logger := &recordingLogger{}

	outcome := NewInstaller(logger, "/repo", newStub(), WithFs(&faultyFs{Fs: base, failChmod: true})).Install()
	assert.Equal(t, OutcomeFilesystemFailure, outcome)
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "Can not make file executable /repo/.git/hooks/pre-push")

	// The empty file survives but never receives the block.
	data, err := afero.ReadFile(base, "/repo/.git/hooks/pre-push")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestInstall_ReadFailure(t *testing.T) {
	t.Parallel()

	base := memGitRepo(t)
	const foreign = "#!/bin/sh\necho foreign\n"
	require.NoError(t, afero.WriteFile(base, "/repo/.git/hooks/pre-push", []byte(foreign), 0o755))
	logger := &recordingLogger{}

	outcome := NewInstaller(logger, "/repo", newStub(), WithFs(&faultyFs{Fs: base, failOpen: true})).Install()
	assert.Equal(t, OutcomeFilesystemFailure, outcome)
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "Failed to read pre-push hook file /repo/.git/hooks/pre-push")

	data, err := afero.ReadFile(base, "/repo/.git/hooks/pre-push")
	require.NoError(t, err)
	assert.Equal(t, foreign, string(data))
}

func TestInstaller_StatusReadFailure(t *testing.T) {
	t.Parallel()

	base := memGitRepo(t)
	require.NoError(t, afero.WriteFile(base, "/repo/.git/hooks/pre-push", []byte("#!/bin/sh\n"), 0o755))

	installer := NewInstaller(nil, "/repo", newStub(), WithFs(&faultyFs{Fs: base, failOpen: true}))
	installed, err := installer.Status()
	require.ErrorIs(t, err, errInjected)
	assert.False(t, installed)
}

func TestInstaller_Status(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	installer := NewInstaller(nil, root, newStub())

	installed, err := installer.Status()
	require.NoError(t, err)
	assert.False(t, installed)

	writeHook(t, root, "#!/bin/sh\n")
	installed, err = installer.Status()
	require.NoError(t, err)
	assert.False(t, installed)

	require.Equal(t, OutcomeInstalled, installer.Install())
	installed, err = installer.Status()
	require.NoError(t, err)
	assert.True(t, installed)
}

func TestInstaller_HookPath(t *testing.T) {
	t.Parallel()

	installer := NewInstaller(nil, "/repo", newStub())
	assert.Equal(t, filepath.Join("/repo", ".git", "hooks", "pre-push"), installer.HookPath())
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome Outcome
		name    string
		failed  bool
		changed bool
	}{
		{OutcomeInstalled, "Installed", false, true},
		{OutcomeAlreadyInstalled, "AlreadyInstalled", false, false},
		{OutcomeNotGitRepo, "NotGitRepo", false, false},
		{OutcomeExecutorUnavailable, "ExecutorUnavailable", false, false},
		{OutcomeFilesystemFailure, "FilesystemFailure", true, false},
		{Outcome(42), "Outcome(42)", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.name, tt.outcome.String())
			assert.Equal(t, tt.failed, tt.outcome.Failed())
			assert.Equal(t, tt.changed, tt.outcome.Changed())
		})
	}
}
