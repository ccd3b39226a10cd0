package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/milesj/packager/internal/domain"
	"github.com/milesj/packager/internal/utils"
)

// ZipArchiver writes deflate-compressed zip archives
type ZipArchiver struct {
	writer *Writer
	logger *utils.Logger
}

var _ domain.Archiver = (*ZipArchiver)(nil)

// NewZipArchiver creates a zip archiver
func NewZipArchiver(opts WriterOptions) *ZipArchiver {
	w := NewWriter(opts)
	return &ZipArchiver{
		writer: w,
		logger: w.logger.WithComponent("archiver"),
	}
}

// Archive writes entries into a zip file at path. Entries whose name ends in
// "/" become directory entries. The archive only appears at path once every
// entry has been written.
func (a *ZipArchiver) Archive(path string, entries []domain.ArchiveEntry) error {
	if err := utils.EnsureWritableDir(path); err != nil {
		return domain.NewWriteError(path, err)
	}

	err := a.writer.writeAtomic(path, func(f *os.File) (err error) {
		zw := zip.NewWriter(f)
		defer func() {
			if closeErr := zw.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to finalize archive: %w", closeErr)
			}
		}()

		for _, entry := range entries {
			if err := a.addEntry(zw, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var unreadable *domain.UnreadableError
		if errors.As(err, &unreadable) {
			return err
		}
		return domain.NewWriteError(path, err)
	}

	a.logger.Debug().
		Str("path", path).
		Int("entries", len(entries)).
		Msg("Wrote archive")
	return nil
}

func (a *ZipArchiver) addEntry(zw *zip.Writer, entry domain.ArchiveEntry) error {
	if strings.HasSuffix(entry.Name, "/") {
		_, err := zw.Create(entry.Name)
		return err
	}

	file, err := os.Open(entry.Source)
	if err != nil {
		return domain.NewUnreadableError(entry.Source, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return domain.NewUnreadableError(entry.Source, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = entry.Name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, file); err != nil {
		return domain.NewUnreadableError(entry.Source, err)
	}
	return nil
}
