package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_JsonRoundTrip(t *testing.T) {
	fs := NewFileService()
	path := filepath.Join(t.TempDir(), "state", "history.json")

	require.NoError(t, fs.WriteJsonFile(path, []string{"/?lat=1.000000&lng=2.000000"}))

	exists, err := fs.IsFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	var decoded []string
	require.NoError(t, fs.ReadJsonFile(path, &decoded))
	assert.Equal(t, []string{"/?lat=1.000000&lng=2.000000"}, decoded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileService_ReadYamlFile(t *testing.T) {
	fs := NewFileService()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, fs.WriteFileRaw(path, []byte("maps:\n  country: us\n")))

	var v struct {
		Maps struct {
			Country string `yaml:"country"`
		} `yaml:"maps"`
	}
	require.NoError(t, fs.ReadYamlFile(path, &v))
	assert.Equal(t, "us", v.Maps.Country)

	raw, err := fs.ReadFileRaw(path)
	require.NoError(t, err)
	assert.Equal(t, "maps:\n  country: us\n", string(raw))
}

func TestFileService_MissingFile(t *testing.T) {
	fs := NewFileService()
	path := filepath.Join(t.TempDir(), "missing.json")

	exists, err := fs.IsFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	var v any
	assert.ErrorIs(t, fs.ReadJsonFile(path, &v), os.ErrNotExist)
}
