package recordstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections_EnsureAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	c := Open(dir)

	require.NoError(t, c.EnsureAll())

	for _, name := range []string{AttendanceFile, LeaveFile, RoomsFile, WardenMessagesFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, "[]", string(data), name)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestCollections_StoresAreIndependent(t *testing.T) {
	c := Open(t.TempDir())

	_, err := c.Leave.Append(Record{"reason": "exam"})
	require.NoError(t, err)

	att, err := c.Attendance.ListAll()
	require.NoError(t, err)
	leave, err := c.Leave.ListAll()
	require.NoError(t, err)
	assert.Empty(t, att)
	assert.Len(t, leave, 1)
}

func TestCollections_Verify(t *testing.T) {
	dir := t.TempDir()
	c := Open(dir)
	require.NoError(t, c.EnsureAll())
	require.NoError(t, c.Verify())

	require.NoError(t, os.WriteFile(filepath.Join(dir, RoomsFile), []byte("{"), 0o644))

	assert.ErrorIs(t, c.Verify(), ErrCorruptStore)
}

func TestCollections_Check(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data")
	c := Open(dir)

	assert.Error(t, c.Check(), "missing dir")

	require.NoError(t, c.EnsureAll())
	require.NoError(t, os.Remove(c.Rooms.Path()))

	require.NoError(t, c.Check())

	_, err := os.Stat(c.Rooms.Path())
	assert.True(t, os.IsNotExist(err), "check must not recreate collection files")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files left behind")

	file := filepath.Join(root, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, Open(file).Check())
}
