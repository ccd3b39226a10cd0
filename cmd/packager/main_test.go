package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/milesj/packager/internal/domain"
	"github.com/milesj/packager/internal/manifest"
	"github.com/milesj/packager/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureManifest = `{
	"name": "Demo",
	"version": "2.0.0",
	"contents": {
		"js/a": {"path": "js/a.js"},
		"js/b": {"path": "js/b.js", "requires": ["js/a"]},
		"css": {"path": "css/style.css", "type": "css", "category": "styles"}
	}
}`

// fixtureConfig turns minification off so command output is predictable
const fixtureConfig = `
packaging:
  doc_blocks: false
minify:
  js:
    enabled: false
  css:
    enabled: false
logging:
  level: error
`

// setupProject writes a project and makes it the working directory
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"package.json":  fixtureManifest,
		"config.yaml":   fixtureConfig,
		"js/a.js":       "var A = {};\n",
		"js/b.js":       "var B = {};\n",
		"css/style.css": ".style {}\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return dir
}

// resetFlags restores every flag to its default between executions
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_PrintsPackage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"all items", nil, "var A = {};var B = {};.style {}"},
		{"requested item with requires", []string{"js/b"}, "var A = {};var B = {};"},
		{"filter type", []string{"-t", "css"}, ".style {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t)

			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected+"\n", stdout)
		})
	}
}

func TestRootCommand_WritesOutput(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := execute(t, "-o", "build/{name}.js")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(filepath.Join(dir, "build", "demo.js"))
	require.NoError(t, err)
	assert.Equal(t, "var A = {};var B = {};.style {}", string(data))
}

func TestRootCommand_StdoutWithOutput(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := execute(t, "-o", "out.js", "--stdout", "css")
	require.NoError(t, err)
	assert.Equal(t, ".style {}\n", stdout)
	assert.FileExists(t, filepath.Join(dir, "out.js"))
}

func TestRootCommand_DryRun(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := execute(t, "-o", "out.js", "--dry-run", "js/a")
	require.NoError(t, err)
	assert.Equal(t, "var A = {};\n", stdout)
	assert.NoFileExists(t, filepath.Join(dir, "out.js"))
}

func TestRootCommand_Source(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.Chdir(t.TempDir()))

	stdout, _, err := execute(t, "-s", dir, "--config", filepath.Join(dir, "config.yaml"), "js/a")
	require.NoError(t, err)
	assert.Equal(t, "var A = {};\n", stdout)
}

func TestRootCommand_DocBlocks(t *testing.T) {
	setupProject(t)
	require.NoError(t, os.WriteFile("config.yaml", []byte("minify:\n  js:\n    enabled: false\n"), 0644))

	stdout, _, err := execute(t, "js/a")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "/**\n * Demo\n"))

	stdout, _, err = execute(t, "--no-docblocks", "js/a")
	require.NoError(t, err)
	assert.Equal(t, "var A = {};\n", stdout)

	stdout, _, err = execute(t, "js/a")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "/**\n * Demo\n"))
	assert.Contains(t, stdout, " * @package\t\tjs/a\n")
	assert.Contains(t, stdout, "/* js/a.js */\nvar A = {};\n")
}

func TestRootCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown item", []string{"nope"}, domain.ErrItemNotFound},
		{"missing manifest", []string{"-s", "missing"}, domain.ErrManifestMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t)

			_, _, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	setupProject(t)

	_, _, err := execute(t, "--config", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestArchiveCommand(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := execute(t, "archive", "dist/{name}-{version}", "js/a.js", "css/style.css:main.css:styles")
	require.NoError(t, err)

	path := filepath.Join(dir, "dist", "demo-2.0.0.zip")
	assert.Equal(t, path+"\n", stdout)

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 3)
	assert.Equal(t, "a.js", r.File[0].Name)
	assert.Equal(t, "styles/", r.File[1].Name)
	assert.Equal(t, "styles/main.css", r.File[2].Name)
}

func TestArchiveCommand_Errors(t *testing.T) {
	setupProject(t)

	_, _, err := execute(t, "archive", "out")
	assert.Error(t, err)

	_, _, err = execute(t, "archive", "out", "missing.js")
	assert.ErrorIs(t, err, domain.ErrItemMissing)
}

func TestItemsCommand(t *testing.T) {
	setupProject(t)

	stdout, _, err := execute(t, "items")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Demo 2.0.0")
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "js/b")
	assert.Contains(t, stdout, "requires js/a")
	assert.Contains(t, stdout, "styles")
}

func TestItemsCommand_JSON(t *testing.T) {
	setupProject(t)

	stdout, _, err := execute(t, "items", "--json")
	require.NoError(t, err)

	var catalog manifest.Catalog
	require.NoError(t, json.Unmarshal([]byte(stdout), &catalog))
	assert.Equal(t, []string{"js/a", "js/b", "css"}, catalog.Names())

	b, ok := catalog.Get("js/b")
	require.True(t, ok)
	assert.Equal(t, []string{"js/a"}, b.Requires)

	css, ok := catalog.Get("css")
	require.True(t, ok)
	assert.Equal(t, "css", css.Type)
	assert.Equal(t, "styles", css.Category)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Full()+"\n", stdout)
}

func TestRenderItems(t *testing.T) {
	items := []manifest.Item{
		{Name: "js/a", Type: "js", Category: "library"},
		{Name: "css/mobile", Type: "css", Category: "library", Provides: []string{"css"}},
	}

	out := renderItems(items)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "js/a")
	assert.Contains(t, lines[2], "provides css")

	assert.Contains(t, renderItems(nil), "No items declared")
}

func TestDependencies(t *testing.T) {
	tests := []struct {
		name     string
		item     manifest.Item
		expected string
	}{
		{"none", manifest.Item{}, ""},
		{"requires", manifest.Item{Requires: []string{"a", "b"}}, "requires a, b"},
		{"provides", manifest.Item{Provides: []string{"c"}}, "provides c"},
		{"both", manifest.Item{Requires: []string{"a"}, Provides: []string{"c"}}, "requires a; provides c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dependencies(tt.item))
		})
	}
}
