// Package gitrepo drives git as a subprocess. The orchestrator depends only
// on "commit produces a restorable checkpoint" and "hard reset restores the
// prior tree"; everything else about the repository is opaque.
package gitrepo

import (
	"fmt"
	"os/exec"
	"strings"
)

// VersionControl is the narrow contract the checkpoint controller needs.
type VersionControl interface {
	HasChanges() (bool, error)
	StageAll() error
	Commit(message string) (bool, error)
	Head() (string, error)
	ResetHard(rev string) error
	CleanUntracked() error
}

// Git implements VersionControl against the repository at Dir.
type Git struct {
	Dir string
}

// New returns a Git collaborator rooted at dir.
func New(dir string) *Git {
	return &Git{Dir: dir}
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether Dir is inside a git work tree.
func (g *Git) IsRepo() bool {
	out, err := g.run("rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// HasChanges reports whether the working tree differs from HEAD, including
// untracked files.
func (g *Git) HasChanges() (bool, error) {
	out, err := g.run("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// StageAll stages every change in the working tree.
func (g *Git) StageAll() error {
	_, err := g.run("add", "-A")
	return err
}

// Commit records staged changes. It returns false when there was nothing to
// commit, which is not an error.
func (g *Git) Commit(message string) (bool, error) {
	changed, err := g.HasChanges()
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if _, err := g.run("commit", "-m", message); err != nil {
		return false, err
	}
	return true, nil
}

// Head returns the current commit hash.
func (g *Git) Head() (string, error) {
	out, err := g.run("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ResetHard restores the working tree and index to rev exactly.
func (g *Git) ResetHard(rev string) error {
	_, err := g.run("reset", "--hard", rev)
	return err
}

// CleanUntracked removes files a rolled-back strategy may have left behind.
func (g *Git) CleanUntracked() error {
	_, err := g.run("clean", "-fd")
	return err
}

func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
