package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrInvalidFormat indicates the manifest file is not valid JSON, YAML or TOML
	ErrInvalidFormat = errors.New("manifest must be valid JSON, YAML or TOML")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .json, .yaml, .yml or .toml)")

	// ErrDuplicateItem indicates an item name is declared more than once
	ErrDuplicateItem = errors.New("duplicate item name")

	// ErrEmptyItemName indicates an item was declared without a name
	ErrEmptyItemName = errors.New("item name cannot be empty")

	// ErrEmptyReference indicates a dependency list contains an empty name
	ErrEmptyReference = errors.New("item reference cannot be empty")
)
