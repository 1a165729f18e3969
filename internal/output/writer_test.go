package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcauet/dirhunt/internal/scanner"
)

func TestFileWriterDisabledWithEmptyPath(t *testing.T) {
	w, err := NewFileWriter("")
	require.NoError(t, err)
	assert.False(t, w.IsEnabled())
	assert.NoError(t, w.Write(scanner.Finding{URL: "http://example.com/"}))
	assert.NoError(t, w.Close())
}

func TestFileWriterWritesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	w, err := NewFileWriter(path)
	require.NoError(t, err)
	assert.True(t, w.IsEnabled())
	assert.Equal(t, path, w.Path())

	require.NoError(t, w.Write(scanner.Finding{URL: "http://example.com/admin", Code: 200, ContentLen: 42}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://example.com/admin")
	assert.Contains(t, string(data), "(CODE:200|SIZE:42)")
}
