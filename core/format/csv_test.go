package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablesync/core"
)

func TestCSVWrite(t *testing.T) {
	buf, err := core.NewBuffer(
		core.Header{"id", "name"},
		[]core.Row{{1, "a"}, {2, "b"}},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "t1_20240501.csv")
	require.NoError(t, NewCSV().Write(path, buf))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,a\n2,b\n", string(got))
}

func TestCSVWriteQuotingAndNull(t *testing.T) {
	buf, err := core.NewBuffer(
		core.Header{"id", "note"},
		[]core.Row{
			{1, "hello, world"},
			{2, "line\nbreak"},
			{3, nil},
			{4, []byte("raw")},
		},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "notes.csv")
	require.NoError(t, NewCSV().Write(path, buf))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,note\n1,\"hello, world\"\n2,\"line\nbreak\"\n3,\n4,raw\n", string(got))
}

func TestCSVWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t1.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale,content\n"), 0o644))

	buf, err := core.NewBuffer(core.Header{"id"}, []core.Row{{1}})
	require.NoError(t, err)
	require.NoError(t, NewCSV().Write(path, buf))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(got))
}

func TestCSVRoundTrip(t *testing.T) {
	in, err := core.NewBuffer(
		core.Header{"id", "name", "note"},
		[]core.Row{
			{1, "a", "with, comma"},
			{2, "b", ""},
		},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roundtrip.csv")
	codec := NewCSV()
	require.NoError(t, codec.Write(path, in))

	out, err := codec.Read(path)
	require.NoError(t, err)

	// csv coerces everything to text
	assert.Equal(t, in.Header(), out.Header())
	assert.Equal(t, []core.Row{
		{"1", "a", "with, comma"},
		{"2", "b", ""},
	}, out.Rows())
}

func TestCSVReadMissingFile(t *testing.T) {
	_, err := NewCSV().Read(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, core.ErrFileAccess)
}

func TestCSVReadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n"), 0o644))

	buf, err := NewCSV().Read(path)
	require.NoError(t, err)

	assert.Equal(t, core.Header{"id", "name"}, buf.Header())
	assert.True(t, buf.IsEmpty())
}
