package packager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milesj/packager/internal/manifest"
	"github.com/stretchr/testify/require"
)

// newProject copies the fixture project into a temporary directory
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join("testdata", "project"))))
	return dir
}

// openProject copies the fixture project and opens a packager on it
func openProject(t *testing.T, opts PackagerOptions) (*Packager, string) {
	t.Helper()
	dir := newProject(t)
	p, err := Open(dir, opts)
	require.NoError(t, err)
	return p, dir
}

// newCatalogPackager creates a packager for an in-memory catalog rooted at dir
func newCatalogPackager(t *testing.T, dir string, items ...manifest.Item) *Packager {
	t.Helper()
	catalog, err := manifest.NewCatalog(items...)
	require.NoError(t, err)

	sep := string(filepath.Separator)
	return New(&manifest.Manifest{
		Name:       "Graph",
		Version:    "0.1.0",
		Contents:   catalog,
		BaseDir:    dir + sep,
		SourcePath: dir + sep,
	}, PackagerOptions{})
}

func writeSource(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
