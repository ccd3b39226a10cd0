package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrManifestMissing indicates no manifest file exists in the source path
	ErrManifestMissing = errors.New("manifest not found")

	// ErrItemNotFound indicates an item name is not declared in the catalog
	ErrItemNotFound = errors.New("item not found")

	// ErrItemMissing indicates an item's source file does not exist on disk
	ErrItemMissing = errors.New("item source missing")

	// ErrMinifierMissing indicates no minifier is registered for a content type
	ErrMinifierMissing = errors.New("minifier not registered")

	// ErrWriteFailed indicates writing output failed
	ErrWriteFailed = errors.New("write failed")

	// ErrUnreadable indicates a file exists but cannot be read
	ErrUnreadable = errors.New("file not readable")
)

// ManifestMissingError is returned when a packager is created for a directory
// without a manifest file
type ManifestMissingError struct {
	Path string
}

func (e *ManifestMissingError) Error() string {
	return fmt.Sprintf("manifest does not exist at %s", e.Path)
}

func (e *ManifestMissingError) Is(target error) bool {
	return target == ErrManifestMissing
}

// NewManifestMissingError creates a new ManifestMissingError
func NewManifestMissingError(path string) *ManifestMissingError {
	return &ManifestMissingError{Path: path}
}

// ItemNotFoundError represents a lookup of an undeclared item
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s does not exist", e.Name)
}

func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

// NewItemNotFoundError creates a new ItemNotFoundError
func NewItemNotFoundError(name string) *ItemNotFoundError {
	return &ItemNotFoundError{Name: name}
}

// ItemMissingError represents a resolved item or archive file whose path is
// absent on disk
type ItemMissingError struct {
	Name string
	Path string
}

func (e *ItemMissingError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("item %s does not exist at path: %s", e.Name, e.Path)
	}
	return fmt.Sprintf("item does not exist at path: %s", e.Path)
}

func (e *ItemMissingError) Is(target error) bool {
	return target == ErrItemMissing
}

// NewItemMissingError creates a new ItemMissingError
func NewItemMissingError(name, path string) *ItemMissingError {
	return &ItemMissingError{Name: name, Path: path}
}

// MinifierMissingError represents a minification request for a content type
// without a registered minifier
type MinifierMissingError struct {
	Type string
}

func (e *MinifierMissingError) Error() string {
	return fmt.Sprintf("minifier for %s does not exist", e.Type)
}

func (e *MinifierMissingError) Is(target error) bool {
	return target == ErrMinifierMissing
}

// NewMinifierMissingError creates a new MinifierMissingError
func NewMinifierMissingError(contentType string) *MinifierMissingError {
	return &MinifierMissingError{Type: contentType}
}

// WriteError represents a failure persisting output
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// NewWriteError creates a new WriteError
func NewWriteError(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}

// UnreadableError represents a file that exists but cannot be opened
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("%s is not readable: %v", e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

func (e *UnreadableError) Is(target error) bool {
	return target == ErrUnreadable
}

// NewUnreadableError creates a new UnreadableError
func NewUnreadableError(path string, err error) *UnreadableError {
	return &UnreadableError{Path: path, Err: err}
}
