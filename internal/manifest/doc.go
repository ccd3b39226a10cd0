// Package manifest provides types and utilities for loading and validating
// packager manifest files. A manifest describes package metadata and a catalog
// of named content items (scripts and stylesheets) with their dependency
// relations.
//
// # Manifest Format
//
// Manifests are conventionally named package.json and live at the root of the
// source tree. YAML (package.yaml, package.yml) and TOML (package.toml) are
// accepted as well:
//
//	{
//	  "name": "Packager",
//	  "version": "1.0.0",
//	  "sourcePath": "src/",
//	  "outputFile": "build/{name}-{version}.min.js",
//	  "authors": [{"name": "Miles Johnson", "homepage": "http://milesj.me"}],
//	  "includes": ["js/a"],
//	  "contents": {
//	    "js/a": {"path": "js/a.js"},
//	    "js/c": {"path": "js/c.js", "requires": ["js/b"]}
//	  }
//	}
//
// Catalog order is significant: items are packaged in declaration order when
// no explicit item list is requested, so the catalog preserves the order of
// keys as written in every supported format.
//
// # Usage
//
//	loader := manifest.NewLoader()
//	m, err := loader.LoadDir("./assets")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, item := range m.Contents.Items() {
//	    // Inspect each item
//	}
//
// # Error Handling
//
// A missing manifest is reported as *domain.ManifestMissingError. The package
// also defines sentinel errors:
//   - ErrInvalidFormat: file is not valid JSON/YAML/TOML
//   - ErrUnsupportedExt: unsupported file extension
//   - ErrDuplicateItem: an item name is declared twice
//   - ErrEmptyItemName: an item has no name
//   - ErrEmptyReference: includes/requires/provides contains an empty name
package manifest
