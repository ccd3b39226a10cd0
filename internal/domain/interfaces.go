package domain

//go:generate mockgen -destination=../mocks/minifier_mock.go -package=mocks github.com/milesj/packager/internal/domain Minifier

// Minifier reduces the size of an item's content for one content type
type Minifier interface {
	// Minify returns the minified form of src
	Minify(src []byte) ([]byte, error)
	// Type returns the content type tag this minifier handles (e.g. "js", "css")
	Type() string
}

// Writer persists assembled package output
type Writer interface {
	// Write stores content at path, creating parent directories as needed
	Write(path string, content []byte) error
}

// ArchiveEntry is a single file placed into an archive
type ArchiveEntry struct {
	// Source is the absolute path of the file on disk
	Source string
	// Name is the entry path inside the archive, using forward slashes
	Name string
}

// Archiver bundles files into a single archive file
type Archiver interface {
	// Archive writes entries into an archive at path
	Archive(path string, entries []ArchiveEntry) error
}
