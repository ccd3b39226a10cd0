package packager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milesj/packager/internal/domain"
)

// ArchiveFile is one file to bundle into an archive
type ArchiveFile struct {
	// Path is relative to the manifest directory, unless absolute
	Path string
	// Name is the entry name inside the archive. Defaults to the base name of Path.
	Name string
	// Folder places the entry in a directory inside the archive
	Folder string
}

// ParseArchiveFile parses "path[:name[:folder]]"
func ParseArchiveFile(s string) (ArchiveFile, error) {
	parts := strings.SplitN(s, ":", 3)
	file := ArchiveFile{Path: strings.TrimSpace(parts[0])}
	if file.Path == "" {
		return ArchiveFile{}, fmt.Errorf("invalid archive file %q: path is required", s)
	}
	if len(parts) > 1 {
		file.Name = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		file.Folder = strings.TrimSpace(parts[2])
	}
	return file, nil
}

// Archive bundles files into a zip archive and returns its absolute path.
// ".zip" is appended to outputPath when missing, and a relative outputPath is
// placed under the manifest directory. Every file is checked before the archive
// is written, so a missing (*domain.ItemMissingError) or unreadable
// (*domain.UnreadableError) file leaves nothing behind.
func (p *Packager) Archive(outputPath string, files []ArchiveFile) (string, error) {
	if !strings.HasSuffix(outputPath, ".zip") {
		outputPath += ".zip"
	}
	path := p.resolveOutput(outputPath, true)

	entries, err := p.archiveEntries(files)
	if err != nil {
		return "", err
	}

	if err := p.archiver.Archive(path, entries); err != nil {
		if !errors.Is(err, domain.ErrWriteFailed) && !errors.Is(err, domain.ErrUnreadable) {
			err = domain.NewWriteError(path, err)
		}
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve archive path: %w", err)
	}

	p.logger.Info().
		Int("files", len(files)).
		Str("output", abs).
		Msg("Archived files")
	return abs, nil
}

// ValidateArchive runs the file checks of Archive without writing anything
func (p *Packager) ValidateArchive(files []ArchiveFile) error {
	_, err := p.archiveEntries(files)
	return err
}

func (p *Packager) archiveEntries(files []ArchiveFile) ([]domain.ArchiveEntry, error) {
	entries := make([]domain.ArchiveEntry, 0, len(files))
	folders := make(map[string]bool)

	for _, file := range files {
		source := filepath.FromSlash(file.Path)
		if !filepath.IsAbs(source) {
			source = filepath.Join(p.manifest.BaseDir, source)
		}
		source = p.FormatName(source)

		name := filepath.Base(source)
		if file.Name != "" {
			name = p.FormatName(file.Name)
		}

		if err := checkReadable(name, source); err != nil {
			return nil, err
		}

		folder := strings.Trim(filepath.ToSlash(file.Folder), "/")
		if folder != "" {
			folder += "/"
			if !folders[folder] {
				folders[folder] = true
				entries = append(entries, domain.ArchiveEntry{Name: folder})
			}
		}

		entries = append(entries, domain.ArchiveEntry{
			Source: source,
			Name:   folder + name,
		})
	}

	return entries, nil
}

// checkReadable verifies source is an existing regular file that can be opened
func checkReadable(name, source string) error {
	info, err := os.Stat(source)
	if os.IsNotExist(err) {
		return domain.NewItemMissingError(name, source)
	}
	if err != nil {
		return domain.NewUnreadableError(source, err)
	}
	if info.IsDir() {
		return domain.NewUnreadableError(source, errors.New("is a directory"))
	}

	f, err := os.Open(source)
	if err != nil {
		return domain.NewUnreadableError(source, err)
	}
	return f.Close()
}
