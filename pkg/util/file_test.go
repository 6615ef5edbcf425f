package util

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "util")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"b.json", "a.json", "c.txt"} {
		require.Nil(t, ioutil.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
	require.Nil(t, os.Mkdir(filepath.Join(dir, "d.json"), 0755))

	require.True(t, DirExists(dir))
	require.False(t, FileExists(dir))
	require.True(t, FileExists(filepath.Join(dir, "a.json")))
	require.False(t, DirExists(filepath.Join(dir, "a.json")))

	size, err := GetFileSize(filepath.Join(dir, "a.json"))
	require.Nil(t, err)
	require.Equal(t, uint64(2), size)

	paths, err := ListFiles(dir, ".json")
	require.Nil(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, paths)

	_, err = ListFiles(filepath.Join(dir, "missing"), ".json")
	require.NotNil(t, err)
}
