package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/yaklabco/prepush/internal/log"
)

// ErrNotGitRepo is returned when the directory is not inside a Git work tree.
var ErrNotGitRepo = errors.New("not a git repository")

// GitRepo holds information about a Git repository.
type GitRepo struct {
	// RootDir is the absolute, symlink-free path to the work tree root.
	RootDir string
}

// FindGitRepoContext locates the Git repository from the given directory with context.
// If dir is empty, the current working directory is used. Parent directories
// are searched, and linked worktrees resolve to their own work tree.
func FindGitRepoContext(ctx context.Context, dir string) (*GitRepo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absDir, err := absDir(dir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(absDir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotGitRepo, absDir)
		}
		return nil, fmt.Errorf("opening git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, fmt.Errorf("%w: %s is a bare repository", ErrNotGitRepo, absDir)
		}
		return nil, fmt.Errorf("opening work tree: %w", err)
	}

	// Canonical paths matter on macOS, where /var links to /private/var.
	rootDir, err := filepath.EvalSymlinks(worktree.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("resolving root dir symlinks: %w", err)
	}

	slog.DebugContext(ctx, "git repository found",
		slog.String(log.Root, rootDir),
		slog.String(log.Dir, absDir))

	return &GitRepo{RootDir: filepath.Clean(rootDir)}, nil
}

// ResolveRoot returns the directory the installer should target for dir.
// Inside a Git work tree that is the top level; otherwise dir itself is
// returned so the installer can report the missing repository.
func ResolveRoot(ctx context.Context, dir string) (string, error) {
	repo, err := FindGitRepoContext(ctx, dir)
	if err == nil {
		return repo.RootDir, nil
	}
	if !errors.Is(err, ErrNotGitRepo) {
		return "", err
	}

	slog.DebugContext(ctx, "no git repository, using directory as root",
		slog.String(log.Dir, dir),
		slog.String(log.Error, err.Error()))
	return absDir(dir)
}

func absDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return abs, nil
}
