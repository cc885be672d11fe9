package strategy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kamilpajak/tsmend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExecutor_RewritesTargetFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src/a.tsx", "import { x, y } from './m';\nconst v = x;\n")

	exec := &Executor{Dir: dir}
	cat := models.Category{
		Key:     models.CategoryUnusedImports,
		Members: []models.Diagnostic{unusedDiag("src/a.tsx", "y")},
	}

	fixes, err := exec.Run(DropUnused{}, cat)
	require.NoError(t, err)
	assert.Equal(t, 1, fixes)
	assert.NotContains(t, readFile(t, path), "y")
}

func TestExecutor_DryRunLeavesFilesUntouched(t *testing.T) {
	dir := t.TempDir()
	content := "import { x, y } from './m';\nconst v = x;\n"
	path := writeFile(t, dir, "a.tsx", content)

	exec := &Executor{Dir: dir, DryRun: true}
	cat := models.Category{
		Key:     models.CategoryUnusedImports,
		Members: []models.Diagnostic{unusedDiag("a.tsx", "y")},
	}

	fixes, err := exec.Run(DropUnused{}, cat)
	require.NoError(t, err)
	assert.Equal(t, 1, fixes)
	assert.Equal(t, content, readFile(t, path))
}

func TestExecutor_BackupWritesBakFile(t *testing.T) {
	dir := t.TempDir()
	content := "import { x, y } from './m';\nconst v = x;\n"
	path := writeFile(t, dir, "a.tsx", content)

	exec := &Executor{Dir: dir, Backup: true}
	cat := models.Category{
		Key:     models.CategoryUnusedImports,
		Members: []models.Diagnostic{unusedDiag("a.tsx", "y")},
	}

	_, err := exec.Run(DropUnused{}, cat)
	require.NoError(t, err)
	assert.Equal(t, content, readFile(t, path+".bak"))
	assert.NotEqual(t, content, readFile(t, path))
}

func TestExecutor_MissingFileIsAnError(t *testing.T) {
	exec := &Executor{Dir: t.TempDir()}
	cat := models.Category{
		Key:     models.CategoryUnusedImports,
		Members: []models.Diagnostic{unusedDiag("gone.tsx", "y")},
	}

	_, err := exec.Run(DropUnused{}, cat)
	assert.Error(t, err)
}

func TestDefaultRegistry_CoversBuiltInCategories(t *testing.T) {
	r := Default()

	for _, key := range []string{
		models.CategorySyntaxImports,
		models.CategoryDuplicateImports,
		models.CategoryUnusedImports,
		models.CategoryMissingImports,
		models.CategoryEventHandlerTypes,
	} {
		_, ok := r.For(key)
		assert.True(t, ok, "no strategy for %s", key)
	}

	_, ok := r.For(models.CategoryTypeCompatibility)
	assert.False(t, ok, "type-compatibility has no automated strategy")
	_, ok = r.For("other-TS9999")
	assert.False(t, ok)
}
