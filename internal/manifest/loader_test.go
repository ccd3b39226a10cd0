package manifest

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/milesj/packager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonManifest = `{
	"name": "Packager",
	"description": "Example packager project.",
	"version": "1.0.0",
	"copyright": 2013,
	"link": "http://milesj.me/code/php/packager",
	"license": "MIT",
	"sourcePath": "src/",
	"authors": [{"name": "Miles Johnson", "homepage": "http://milesj.me"}],
	"includes": ["js/a"],
	"contents": {
		"js/c": {"title": "C", "path": "js/c.js", "requires": ["js/b"]},
		"js/a": {"title": "A", "path": "js/a.js"},
		"js/b": {"title": "B", "path": "js/b.js", "category": "core"},
		"css": {"title": "CSS", "path": "css/style.css", "type": "css"}
	}
}`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return dir
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.Equal(t, DefaultItemType, loader.defaultType)
}

func TestLoader_LoadDir_Missing(t *testing.T) {
	dir := t.TempDir()

	m, err := NewLoader().LoadDir(dir)

	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrManifestMissing)

	var missing *domain.ManifestMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), missing.Path)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	m, err := NewLoader().Load("/nonexistent/path/package.json")

	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrManifestMissing)
}

func TestLoader_LoadDir_JSON(t *testing.T) {
	dir := writeManifest(t, "package.json", jsonManifest)

	m, err := NewLoader().LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "Packager", m.Name)
	assert.Equal(t, "Example packager project.", m.Description)
	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, "2013", m.Copyright)
	assert.Equal(t, "MIT", m.License)
	assert.Equal(t, []Author{{Name: "Miles Johnson", Homepage: "http://milesj.me"}}, m.Authors)
	assert.Equal(t, []string{"js/a"}, m.Includes)

	// Declaration order is preserved
	assert.Equal(t, []string{"js/c", "js/a", "js/b", "css"}, m.Contents.Names())

	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	sep := string(filepath.Separator)
	assert.Equal(t, absDir+sep, m.BaseDir)
	assert.Equal(t, filepath.Join(absDir, "src")+sep, m.SourcePath)
}

func TestLoader_ItemDefaults(t *testing.T) {
	dir := writeManifest(t, "package.json", jsonManifest)

	m, err := NewLoader().LoadDir(dir)
	require.NoError(t, err)

	c, ok := m.Item("js/c")
	require.True(t, ok)
	assert.Equal(t, "js/c", c.Name)
	assert.Equal(t, "js", c.Type)
	assert.Equal(t, DefaultItemCategory, c.Category)
	assert.Equal(t, []string{"js/b"}, c.Requires)
	assert.Empty(t, c.Source)

	b, _ := m.Item("js/b")
	assert.Equal(t, "core", b.Category)

	css, _ := m.Item("css")
	assert.Equal(t, "css", css.Type)
}

func TestLoader_WithDefaultType(t *testing.T) {
	dir := writeManifest(t, "package.json", `{"contents": {"main": {"path": "main.css"}}}`)

	m, err := NewLoader().WithDefaultType("css").LoadDir(dir)
	require.NoError(t, err)

	item, ok := m.Item("main")
	require.True(t, ok)
	assert.Equal(t, "css", item.Type)
}

func TestLoader_CopyrightDefaultsToCurrentYear(t *testing.T) {
	loader := NewLoader()
	loader.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	m, err := loader.LoadFromBytes([]byte(`{"name": "x"}`), ".json", "/src")
	require.NoError(t, err)
	assert.Equal(t, "2026", m.Copyright)

	// An explicit empty value is kept
	m, err = loader.LoadFromBytes([]byte(`{"copyright": ""}`), ".json", "/src")
	require.NoError(t, err)
	assert.Equal(t, "", m.Copyright)
}

func TestLoader_CopyrightCurrentYear(t *testing.T) {
	m, err := NewLoader().LoadFromBytes([]byte(`{}`), ".json", "/src")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(time.Now().Year()), m.Copyright)
	assert.Equal(t, 0, m.Contents.Len())
}

func TestLoader_LoadDir_PrefersJSON(t *testing.T) {
	dir := writeManifest(t, "package.json", `{"name": "from-json"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.yaml"), []byte("name: from-yaml\n"), 0644))

	m, err := NewLoader().LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-json", m.Name)
}

func TestLoader_LoadDir_YAML(t *testing.T) {
	yamlContent := `
name: Packager
version: 1.0
copyright: 2013
sourcePath: src
includes: [js/a]
contents:
  js/b:
    path: js/b.js
  js/a:
    path: js/a.js
    provides: [js/b]
  style:
    path: css/style.css
    type: css
`
	dir := writeManifest(t, "package.yml", yamlContent)

	m, err := NewLoader().LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "Packager", m.Name)
	assert.Equal(t, "1.0", m.Version)
	assert.Equal(t, "2013", m.Copyright)
	assert.Equal(t, []string{"js/b", "js/a", "style"}, m.Contents.Names())

	a, _ := m.Item("js/a")
	assert.Equal(t, []string{"js/b"}, a.Provides)
	assert.Equal(t, "js", a.Type)
}

func TestLoader_LoadDir_TOML(t *testing.T) {
	tomlContent := `
name = "Packager"
version = "2.0.0"
copyright = 2014
sourcePath = "src/"
includes = ["zeta"]

[[authors]]
name = "Miles Johnson"

[contents.zeta]
path = "js/zeta.js"

[contents.alpha]
path = "js/alpha.js"
requires = ["zeta"]

[contents."css/main"]
path = "css/main.css"
type = "css"
`
	dir := writeManifest(t, "package.toml", tomlContent)

	m, err := NewLoader().LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "Packager", m.Name)
	assert.Equal(t, "2.0.0", m.Version)
	assert.Equal(t, "2014", m.Copyright)
	assert.Equal(t, []Author{{Name: "Miles Johnson"}}, m.Authors)
	assert.Equal(t, []string{"zeta", "alpha", "css/main"}, m.Contents.Names())

	alpha, _ := m.Item("alpha")
	assert.Equal(t, []string{"zeta"}, alpha.Requires)
	assert.Equal(t, "js", alpha.Type)

	css, _ := m.Item("css/main")
	assert.Equal(t, "css", css.Type)
}

func TestLoadFromBytes_ArrayContents(t *testing.T) {
	content := `{"contents": [
		{"name": "second", "path": "b.js"},
		{"name": "first", "path": "a.js"}
	]}`

	m, err := NewLoader().LoadFromBytes([]byte(content), ".json", "/src")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, m.Contents.Names())
}

func TestLoadFromBytes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ext     string
		wantErr error
	}{
		{"invalid json", `{invalid json content}`, ".json", ErrInvalidFormat},
		{"invalid yaml", "contents: [unclosed", ".yaml", ErrInvalidFormat},
		{"invalid toml", "name = ", ".toml", ErrInvalidFormat},
		{"unsupported extension", "content", ".txt", ErrUnsupportedExt},
		{"contents wrong type", `{"contents": "nope"}`, ".json", ErrInvalidFormat},
		{"duplicate array items", `{"contents": [{"name": "a"}, {"name": "a"}]}`, ".json", ErrDuplicateItem},
		{"unnamed array item", `{"contents": [{"path": "a.js"}]}`, ".json", ErrEmptyItemName},
		{"duplicate yaml keys", "contents:\n  - name: a\n  - name: a\n", ".yaml", ErrDuplicateItem},
		{"empty include", `{"includes": [""]}`, ".json", ErrEmptyReference},
		{"empty requires", `{"contents": {"a": {"requires": [""]}}}`, ".json", ErrEmptyReference},
		{"empty provides", `{"contents": {"a": {"provides": [""]}}}`, ".json", ErrEmptyReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewLoader().LoadFromBytes([]byte(tt.content), tt.ext, "/src")
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromBytes_CaseInsensitiveExt(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadFromBytes([]byte(`name: x`), ".YAML", "/src")
	assert.NoError(t, err)

	_, err = loader.LoadFromBytes([]byte(`{"name": "x"}`), ".JSON", "/src")
	assert.NoError(t, err)

	_, err = loader.LoadFromBytes([]byte(`name = "x"`), ".Toml", "/src")
	assert.NoError(t, err)
}

func TestLoader_Load_ReadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.Mkdir(path, 0755))

	m, err := NewLoader().Load(path)

	assert.Nil(t, m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest file")
}

func TestLoader_SourcePathDefaultsToBaseDir(t *testing.T) {
	m, err := NewLoader().LoadFromBytes([]byte(`{}`), ".json", "/project")
	require.NoError(t, err)

	sep := string(filepath.Separator)
	assert.Equal(t, filepath.Clean("/project")+sep, m.BaseDir)
	assert.Equal(t, m.BaseDir, m.SourcePath)
}
