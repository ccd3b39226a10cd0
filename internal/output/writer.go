package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/milesj/packager/internal/domain"
	"github.com/milesj/packager/internal/utils"
)

// DefaultFileMode is the permission given to written files
const DefaultFileMode os.FileMode = 0644

// Writer writes package output to the filesystem. Files are written to a
// temporary sibling and renamed into place, so readers never see a partial file.
type Writer struct {
	mode   os.FileMode
	logger *utils.Logger
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Mode   os.FileMode
	Logger *utils.Logger
}

var _ domain.Writer = (*Writer)(nil)

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Mode == 0 {
		opts.Mode = DefaultFileMode
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Writer{
		mode:   opts.Mode,
		logger: opts.Logger.WithComponent("writer"),
	}
}

// Write stores content at path
func (w *Writer) Write(path string, content []byte) error {
	if err := utils.EnsureWritableDir(path); err != nil {
		return domain.NewWriteError(path, err)
	}

	if err := w.writeAtomic(path, func(f *os.File) error {
		_, err := f.Write(content)
		return err
	}); err != nil {
		return domain.NewWriteError(path, err)
	}

	w.logger.Debug().
		Str("path", path).
		Int("bytes", len(content)).
		Msg("Wrote file")
	return nil
}

// writeAtomic fills a temporary file in path's directory and renames it to path
func (w *Writer) writeAtomic(path string, fill func(*os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(w.mode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	return os.Rename(tmpPath, path)
}
