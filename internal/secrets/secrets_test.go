// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "contact-email", "  ops@example.org  \n")
				writeFile(t, dir, "ncbi-api-key", "abc123")
				return dir
			},
			want: map[string]string{
				"contact-email": "ops@example.org",
				"ncbi-api-key":  "abc123",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "contact-email", "ops@example.org")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"contact-email": "ops@example.org",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "contact-email", "real@example.org")
				return dir
			},
			want: map[string]string{
				"contact-email": "real@example.org",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "ncbi-api-key", "nk_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"ncbi-api-key": "nk_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read mode 0000 files")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "CITECHECK_TEST_CONTACT=ops@example.org\nCITECHECK_TEST_PRESET=from-file\n")

	t.Setenv("CITECHECK_TEST_PRESET", "from-env")
	// Registers cleanup; LoadEnv sets the value below.
	t.Setenv("CITECHECK_TEST_CONTACT", "")
	require.NoError(t, os.Unsetenv("CITECHECK_TEST_CONTACT"))

	require.NoError(t, LoadEnv(filepath.Join(dir, ".env")))
	assert.Equal(t, "ops@example.org", os.Getenv("CITECHECK_TEST_CONTACT"))
	assert.Equal(t, "from-env", os.Getenv("CITECHECK_TEST_PRESET"))
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), ".env")))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
