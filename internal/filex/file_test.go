package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesMissingDirectory(t *testing.T) {
	tmp := t.TempDir()

	path := filepath.Join(tmp, "reports", "nested", "README.md")
	got, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	fi, err := os.Stat(filepath.Join(tmp, "reports", "nested"))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create the parent directory")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out", "report.xlsx")

	first, err := EnsureParentDir(path)
	require.NoError(t, err)

	second, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestWriteText_WritesContent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "sub", "README.md")

	require.NoError(t, WriteText(path, "# report\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "# report\n", string(data))
}

func TestWriteText_ReplacesExistingFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "README.md")

	require.NoError(t, WriteText(path, "old"))
	require.NoError(t, WriteText(path, "new"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestWriteText_FailsWhenParentIsAFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "reports")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	err := WriteText(filepath.Join(blocker, "README.md"), "data")
	require.Error(t, err, "should fail when a file blocks the parent directory")
}
