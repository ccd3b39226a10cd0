package packager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milesj/packager/internal/domain"
	"github.com/milesj/packager/internal/manifest"
	"github.com/milesj/packager/internal/utils"
)

// Options controls a Package call. Start from Packager.DefaultOptions; the
// zero value disables doc blocks and path prepending.
type Options struct {
	// OutputFile is the destination template. Empty means build only.
	OutputFile string
	// PrependPath places a relative OutputFile under the manifest directory
	PrependPath bool
	// FilterType keeps only top-level items of these types. Empty keeps all.
	FilterType []string
	// DocBlocks emits the metadata header and per-item path comments
	DocBlocks bool
	// StrictMinify fails items whose type has no registered minifier
	StrictMinify bool
	// DryRun builds the output without writing it
	DryRun bool
	// Progress is called after each item is assembled
	Progress func(done, total int, item manifest.Item)
}

// DefaultOptions returns the options used when the caller sets none
func (p *Packager) DefaultOptions() Options {
	return Options{
		OutputFile:  p.manifest.OutputFile,
		PrependPath: true,
		DocBlocks:   true,
	}
}

// Package resolves names (or the whole catalog when names is empty), then
// minifies and concatenates the resolved items. The output is written when
// opts.OutputFile is set. The built text is returned even when the write fails
// with *domain.WriteError.
func (p *Packager) Package(names []string, opts Options) (string, error) {
	if err := p.resolve(names, opts.FilterType); err != nil {
		return "", err
	}

	items := p.pkg.Items()
	var out strings.Builder

	if opts.DocBlocks {
		out.WriteString(p.docBlock())
	}

	for i, item := range items {
		content, err := p.render(item, opts.StrictMinify)
		if err != nil {
			return "", err
		}

		if opts.DocBlocks {
			fmt.Fprintf(&out, "/* %s */\n%s\n\n", p.relativeSource(item), content)
		} else {
			out.WriteString(content)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(items), item)
		}
	}

	text := strings.TrimSpace(out.String())

	if opts.OutputFile == "" || opts.DryRun {
		p.logger.Info().
			Int("items", len(items)).
			Int("bytes", len(text)).
			Bool("dry_run", opts.DryRun).
			Msg("Packaged items")
		return text, nil
	}

	path := p.resolveOutput(opts.OutputFile, opts.PrependPath)
	if err := p.writer.Write(path, []byte(text)); err != nil {
		if !errors.Is(err, domain.ErrWriteFailed) {
			err = domain.NewWriteError(path, err)
		}
		return text, err
	}

	p.logger.Info().
		Int("items", len(items)).
		Int("bytes", len(text)).
		Str("output", path).
		Msg("Packaged items")
	return text, nil
}

// render reads, decodes and minifies one item, returning trimmed content
func (p *Packager) render(item manifest.Item, strict bool) (string, error) {
	if _, err := os.Stat(item.Source); err != nil {
		if os.IsNotExist(err) {
			return "", domain.NewItemMissingError(item.Name, item.Source)
		}
		return "", domain.NewUnreadableError(item.Source, err)
	}

	raw, err := os.ReadFile(item.Source)
	if err != nil {
		return "", domain.NewUnreadableError(item.Source, err)
	}

	content, err := utils.DecodeSource(raw)
	if err != nil {
		return "", fmt.Errorf("item %s: %w", item.Name, err)
	}

	logger := p.logger.WithItem(item.Name)

	switch {
	case p.minifiers.Has(item.Type):
		minifier, _ := p.minifiers.Get(item.Type)
		minified, err := minifier.Minify(content)
		if err != nil {
			return "", fmt.Errorf("failed to minify item %s: %w", item.Name, err)
		}
		logger.Debug().
			Int("before", len(content)).
			Int("after", len(minified)).
			Msg("Minified item")
		content = minified
	case strict:
		return "", domain.NewMinifierMissingError(item.Type)
	default:
		logger.Debug().Str("type", item.Type).Msg("No minifier for type, passing through")
	}

	return strings.TrimSpace(string(content)), nil
}

// relativeSource returns the item path relative to the source path, using
// forward slashes
func (p *Packager) relativeSource(item manifest.Item) string {
	rel := strings.TrimPrefix(item.Source, p.manifest.SourcePath)
	return filepath.ToSlash(rel)
}

// docBlock renders the package header. Empty metadata fields are left out.
func (p *Packager) docBlock() string {
	m := p.manifest

	var b strings.Builder
	b.WriteString("/**\n")

	if m.Name != "" {
		fmt.Fprintf(&b, " * %s\n", m.Name)
	}
	if m.Description != "" {
		fmt.Fprintf(&b, " * %s\n", m.Description)
	}
	if m.Copyright != "" {
		fmt.Fprintf(&b, " *\n * @copyright\t%s\n", m.Copyright)
	}
	if m.Link != "" {
		fmt.Fprintf(&b, " * @link\t\t%s\n", m.Link)
	}
	if m.License != "" {
		fmt.Fprintf(&b, " * @license\t\t%s\n", m.License)
	}
	if len(m.Authors) > 0 {
		authors := make([]string, 0, len(m.Authors))
		for _, author := range m.Authors {
			authors = append(authors, author.String())
		}
		fmt.Fprintf(&b, " * @authors\t\t%s\n", strings.Join(authors, ", "))
	}

	fmt.Fprintf(&b, " * @package\t\t%s\n", strings.Join(p.pkg.Names(), ", "))
	b.WriteString(" */\n\n")

	return b.String()
}
