package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupSheetDir creates a temporary directory and writes the given
// sheet files into it (file name -> content). It returns the absolute
// path to the temp dir and fails the test immediately on error.
func SetupSheetDir(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		err := os.WriteFile(filepath.Join(absPath, name), []byte(content), 0o644)
		require.NoError(t, err, "Failed to write sheet %s", name)
	}

	return absPath
}

// WriteSheet writes or overwrites a single sheet file in dir, for
// exercising reload and watch behavior mid-test.
func WriteSheet(t *testing.T, dir, name, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err, "Failed to write sheet %s", name)
}
