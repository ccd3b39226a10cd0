package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/milesj/packager/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the conventional manifest file name
const DefaultFileName = "package.json"

// candidateFiles are tried in order by LoadDir
var candidateFiles = []string{DefaultFileName, "package.yaml", "package.yml", "package.toml"}

// document is the on-disk shape of a manifest
type document struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Version     Scalar   `json:"version" yaml:"version" toml:"version"`
	Copyright   *Scalar  `json:"copyright" yaml:"copyright" toml:"copyright"`
	Link        string   `json:"link" yaml:"link" toml:"link"`
	License     string   `json:"license" yaml:"license" toml:"license"`
	SourcePath  string   `json:"sourcePath" yaml:"sourcePath" toml:"sourcePath"`
	OutputFile  string   `json:"outputFile" yaml:"outputFile" toml:"outputFile"`
	Authors     []Author `json:"authors" yaml:"authors" toml:"authors"`
	Includes    []string `json:"includes" yaml:"includes" toml:"includes"`
	Contents    Catalog  `json:"contents" yaml:"contents" toml:"-"`
}

// tomlContents captures the TOML contents table; order is recovered from metadata
type tomlContents struct {
	Contents map[string]Item `toml:"contents"`
}

// Loader loads and validates manifest files
type Loader struct {
	defaultType string
	now         func() time.Time
}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{
		defaultType: DefaultItemType,
		now:         time.Now,
	}
}

// WithDefaultType sets the content type given to items that declare none
func (l *Loader) WithDefaultType(contentType string) *Loader {
	if contentType != "" {
		l.defaultType = contentType
	}
	return l
}

// LoadDir finds and loads the manifest in dir. package.json is preferred,
// followed by package.yaml, package.yml and package.toml.
func (l *Loader) LoadDir(dir string) (*Manifest, error) {
	for _, name := range candidateFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return l.Load(path)
		}
	}
	return nil, domain.NewManifestMissingError(filepath.Join(dir, DefaultFileName))
}

// Load reads and parses a manifest file from the given path
func (l *Loader) Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, domain.NewManifestMissingError(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}

	return l.LoadFromBytes(data, filepath.Ext(path), baseDir)
}

// LoadFromBytes parses a manifest from raw bytes. baseDir is the directory
// the manifest's sourcePath is relative to.
func (l *Loader) LoadFromBytes(data []byte, ext, baseDir string) (*Manifest, error) {
	ext = strings.ToLower(ext)

	var doc document
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, decodeError(err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, decodeError(err)
		}
	case ".toml":
		if err := l.decodeTOML(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	m := l.applyDefaults(&doc, baseDir)

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// decodeTOML decodes a TOML manifest. TOML tables are unordered once decoded,
// so item order is rebuilt from the key metadata.
func (l *Loader) decodeTOML(data []byte, doc *document) error {
	if _, err := toml.Decode(string(data), doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var contents tomlContents
	md, err := toml.Decode(string(data), &contents)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != "contents" {
			continue
		}
		item := contents.Contents[key[1]]
		item.Name = key[1]
		if err := doc.Contents.Add(item); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) applyDefaults(doc *document, baseDir string) *Manifest {
	baseDir = withTrailingSeparator(filepath.Clean(baseDir))

	copyright := strconv.Itoa(l.now().Year())
	if doc.Copyright != nil {
		copyright = doc.Copyright.String()
	}

	contents := &doc.Contents
	if contents.items == nil {
		contents = &Catalog{}
	}
	contents.update(func(item *Item) {
		if item.Type == "" {
			item.Type = l.defaultType
		}
		if item.Category == "" {
			item.Category = DefaultItemCategory
		}
	})

	return &Manifest{
		Name:        doc.Name,
		Description: doc.Description,
		Version:     doc.Version.String(),
		Copyright:   copyright,
		Link:        doc.Link,
		License:     doc.License,
		Authors:     doc.Authors,
		Includes:    doc.Includes,
		OutputFile:  doc.OutputFile,
		Contents:    contents,
		BaseDir:     baseDir,
		SourcePath:  withTrailingSeparator(filepath.Join(baseDir, filepath.FromSlash(doc.SourcePath))),
	}
}

// decodeError keeps catalog errors intact and marks everything else as a format error
func decodeError(err error) error {
	if errors.Is(err, ErrDuplicateItem) || errors.Is(err, ErrEmptyItemName) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
}

func withTrailingSeparator(path string) string {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return path
	}
	return path + string(filepath.Separator)
}
