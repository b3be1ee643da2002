// Package gitops versions a book's data directory with git.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo runs git in a book's data directory as a fixed author.
type Repo struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Clean reports whether the working tree has nothing to commit.
func (r Repo) Clean() (bool, error) {
	out, err := r.git("status", "--porcelain").Output()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return len(strings.TrimSpace(string(out))) == 0, nil
}

// CommitAll stages all files and creates a commit. It returns the short commit
// hash, or "" when there was nothing to commit.
func (r Repo) CommitAll(message string) (string, error) {
	if out, err := r.git("add", "-A").CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", strings.TrimSpace(string(out)), err)
	}
	clean, err := r.Clean()
	if err != nil {
		return "", err
	}
	if clean {
		return "", nil
	}

	author := fmt.Sprintf("%s <%s>", r.AuthorName, r.AuthorEmail)
	if out, err := r.git("commit", "--quiet", "-m", message, "--author", author).CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", strings.TrimSpace(string(out)), err)
	}

	out, err := r.git("rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// git builds a git command in r.Dir. The committer is the configured author so
// commits succeed on machines without a global git identity.
func (r Repo) git(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+r.AuthorName,
		"GIT_COMMITTER_EMAIL="+r.AuthorEmail,
	)
	return cmd
}
