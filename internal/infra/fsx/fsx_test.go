package fsx

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "movie_1.jpg")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}

func TestWriteWith_FillErrorKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	require.NoError(t, WriteFile(path, []byte("old")))

	boom := errors.New("boom")
	err := WriteWith(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFrom_CountsBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	n, err := WriteFrom(path, strings.NewReader("hello"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestWriteFile_DirectoryConflict(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))

	err := WriteFile(target, []byte("x"))
	require.Error(t, err)
	assert.True(t, IsPathTypeConflict(err))
}

func TestWriteFile_RenameFailure(t *testing.T) {
	orig := renameFunc
	t.Cleanup(func() { renameFunc = orig })
	renameFunc = func(string, string) error { return errors.New("rename denied") }

	dir := t.TempDir()
	err := WriteFile(filepath.Join(dir, "x.jpg"), []byte("x"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnsureDirsAndIsEmptyDir(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "clips", "action")

	require.NoError(t, EnsureDirs(a, a))

	empty, err := IsEmptyDir(a)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(a, ".hidden"), nil, 0o644))
	empty, err = IsEmptyDir(a)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(a, "car.mp4"), nil, 0o644))
	empty, err = IsEmptyDir(a)
	require.NoError(t, err)
	assert.False(t, empty)
}
