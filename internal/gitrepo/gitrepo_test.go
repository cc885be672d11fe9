package gitrepo

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) *Git {
	t.Helper()
	if !Available() {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "tsmend@test"},
		{"config", "user.name", "tsmend"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run(), "git %v", args)
	}
	return New(dir)
}

func write(t *testing.T, g *Git, name, content string) string {
	t.Helper()
	path := filepath.Join(g.Dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGit_CommitAndHead(t *testing.T) {
	g := initRepo(t)
	write(t, g, "a.ts", "const a = 1;\n")

	require.NoError(t, g.StageAll())
	committed, err := g.Commit("checkpoint: before merge-imports")
	require.NoError(t, err)
	assert.True(t, committed)

	head, err := g.Head()
	require.NoError(t, err)
	assert.Len(t, head, 40)
}

func TestGit_CommitWithNothingToCommit(t *testing.T) {
	g := initRepo(t)
	write(t, g, "a.ts", "const a = 1;\n")
	require.NoError(t, g.StageAll())
	_, err := g.Commit("initial")
	require.NoError(t, err)

	committed, err := g.Commit("empty")
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestGit_ResetHardRestoresTree(t *testing.T) {
	g := initRepo(t)
	path := write(t, g, "a.ts", "const a = 1;\n")
	require.NoError(t, g.StageAll())
	_, err := g.Commit("initial")
	require.NoError(t, err)

	rev, err := g.Head()
	require.NoError(t, err)

	// Mutate and add an untracked file, the shape of a bad strategy run.
	require.NoError(t, os.WriteFile(path, []byte("broken"), 0o644))
	write(t, g, "junk.ts", "junk")

	require.NoError(t, g.ResetHard(rev))
	require.NoError(t, g.CleanUntracked())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\n", string(data))
	_, err = os.Stat(filepath.Join(g.Dir, "junk.ts"))
	assert.True(t, os.IsNotExist(err))
}

func TestGit_HasChanges(t *testing.T) {
	g := initRepo(t)
	write(t, g, "a.ts", "const a = 1;\n")
	require.NoError(t, g.StageAll())
	_, err := g.Commit("initial")
	require.NoError(t, err)

	changed, err := g.HasChanges()
	require.NoError(t, err)
	assert.False(t, changed)

	write(t, g, "b.ts", "const b = 2;\n")
	changed, err = g.HasChanges()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestGit_IsRepo(t *testing.T) {
	g := initRepo(t)
	assert.True(t, g.IsRepo())
	assert.False(t, New(t.TempDir()).IsRepo())
}
