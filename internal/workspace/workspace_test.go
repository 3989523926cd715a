package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaging_PromoteReplacesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "release")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "old.html"), []byte("old"), 0o600))

	s := NewStaging(out)
	require.NoError(t, s.Begin())
	assert.Equal(t, out+"_stage", s.Path())

	_, err := s.WriteIndex("/posts/a/", []byte("new"))
	require.NoError(t, err)
	require.NoError(t, s.Promote())

	data, err := os.ReadFile(filepath.Join(out, "posts", "a", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	assert.NoFileExists(t, filepath.Join(out, "old.html"))
	assert.NoDirExists(t, out+"_stage")
	assert.NoDirExists(t, out+".prev")
	assert.Empty(t, s.Path())
}

func TestStaging_AbortLeavesOutputUntouched(t *testing.T) {
	out := filepath.Join(t.TempDir(), "release")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "keep.html"), []byte("keep"), 0o600))

	s := NewStaging(out)
	require.NoError(t, s.Begin())
	_, err := s.WriteFile("/feed.xml", []byte("partial"))
	require.NoError(t, err)

	s.Abort()
	s.Abort()

	assert.FileExists(t, filepath.Join(out, "keep.html"))
	assert.NoDirExists(t, out+"_stage")
	assert.NoFileExists(t, filepath.Join(out, "feed.xml"))
}

func TestStaging_BeginClearsStaleStage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "release")
	require.NoError(t, os.MkdirAll(out+"_stage", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out+"_stage", "stale"), []byte("x"), 0o600))

	s := NewStaging(out)
	require.NoError(t, s.Begin())
	assert.NoFileExists(t, filepath.Join(s.Path(), "stale"))
}

func TestStaging_ResolveStaysInside(t *testing.T) {
	s := NewStaging(filepath.Join(t.TempDir(), "release"))
	require.NoError(t, s.Begin())

	assert.Equal(t, filepath.Join(s.Path(), "x"), s.Resolve("/../../x"))
	assert.Equal(t, filepath.Join(s.Path(), "2024", "1"), s.Resolve("/2024/1/"))
	assert.Equal(t, s.Path(), s.Resolve("/"))
}

func TestStaging_PromoteWithoutBegin(t *testing.T) {
	require.Error(t, NewStaging(t.TempDir()).Promote())
	_, err := NewStaging(t.TempDir()).WriteFile("/x", nil)
	require.Error(t, err)
}
