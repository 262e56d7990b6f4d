package logtail

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

func TestResolve_NewestMatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0755))

	older := filepath.Join(dir, "a", "worker.log")
	newer := filepath.Join(dir, "a", "b", "api.log")
	writeFile(t, older, "x\n")
	writeFile(t, newer, "y\n")

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	got, err := Resolve(filepath.Join(dir, "**", "*.log"))
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestResolve_PlainPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "")

	got, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolve_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.log"), 0755))

	_, err := Resolve(filepath.Join(dir, "*.log"))
	assert.True(t, errors.Is(err, apperrors.ErrLogFileNotFound))
}

func TestResolve_Errors(t *testing.T) {
	_, err := Resolve("")
	assert.True(t, errors.Is(err, apperrors.ErrLogFileNotFound))

	_, err = Resolve(filepath.Join(t.TempDir(), "*.log"))
	assert.True(t, errors.Is(err, apperrors.ErrLogFileNotFound))
}
