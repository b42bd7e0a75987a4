package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/filedepot/gateway-services/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	f := filepath.Join(t.TempDir(), "exists.txt")
	require.NoError(t, os.WriteFile(f, []byte("data"), 0644))
	assert.True(t, util.FileExists(f))
	assert.False(t, util.FileExists("NonExistentFile.xyz"))
}

func TestExpandTilde(t *testing.T) {
	expanded, err := util.ExpandTilde("~/tmp")
	require.NoError(t, err)
	assert.True(t, len(expanded) > len("/tmp"))
	assert.True(t, filepath.IsAbs(expanded))

	expanded, err = util.ExpandTilde("/nothing/to/expand")
	require.NoError(t, err)
	assert.Equal(t, "/nothing/to/expand", expanded)
}

func TestLooksSafeToDelete(t *testing.T) {
	assert.True(t, util.LooksSafeToDelete("/mnt/depot/data/some_dir", 15, 3))
	assert.False(t, util.LooksSafeToDelete("/usr/local", 12, 3))
	assert.False(t, util.LooksSafeToDelete("/", 12, 3))
}

func TestStringListContains(t *testing.T) {
	list := []string{"apple", "banana"}
	assert.True(t, util.StringListContains(list, "banana"))
	assert.False(t, util.StringListContains(list, "cherry"))
}
