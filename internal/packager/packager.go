package packager

import (
	"github.com/milesj/packager/internal/domain"
	"github.com/milesj/packager/internal/manifest"
	"github.com/milesj/packager/internal/minify"
	"github.com/milesj/packager/internal/output"
	"github.com/milesj/packager/internal/utils"
)

// Packager resolves and assembles the items of one manifest. It holds the
// package of the last call, so a Packager must not be used from several
// goroutines at once.
type Packager struct {
	manifest  *manifest.Manifest
	minifiers *minify.Registry
	writer    domain.Writer
	archiver  domain.Archiver
	logger    *utils.Logger

	pkg      *Package
	visiting map[string]bool
}

// PackagerOptions contains the collaborators of a Packager. Zero values are
// replaced by an empty registry, the filesystem writer, the zip archiver and a
// discarding logger.
type PackagerOptions struct {
	Minifiers *minify.Registry
	Writer    domain.Writer
	Archiver  domain.Archiver
	Logger    *utils.Logger

	// DefaultType is the type given to items that declare none. Only used by Open.
	DefaultType string
}

// New creates a packager for a loaded manifest
func New(m *manifest.Manifest, opts PackagerOptions) *Packager {
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	if opts.Minifiers == nil {
		opts.Minifiers = minify.NewRegistry()
	}
	if opts.Writer == nil {
		opts.Writer = output.NewWriter(output.WriterOptions{Logger: opts.Logger})
	}
	if opts.Archiver == nil {
		opts.Archiver = output.NewZipArchiver(output.WriterOptions{Logger: opts.Logger})
	}

	if m.Contents == nil {
		m.Contents = &manifest.Catalog{}
	}

	return &Packager{
		manifest:  m,
		minifiers: opts.Minifiers,
		writer:    opts.Writer,
		archiver:  opts.Archiver,
		logger:    opts.Logger.WithComponent("packager"),
		pkg:       newPackage(),
		visiting:  make(map[string]bool),
	}
}

// Open loads the manifest found in dir and creates a packager for it
func Open(dir string, opts PackagerOptions) (*Packager, error) {
	m, err := manifest.NewLoader().WithDefaultType(opts.DefaultType).LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return New(m, opts), nil
}

// OpenFile loads the manifest at path and creates a packager for it
func OpenFile(path string, opts PackagerOptions) (*Packager, error) {
	m, err := manifest.NewLoader().WithDefaultType(opts.DefaultType).Load(path)
	if err != nil {
		return nil, err
	}
	return New(m, opts), nil
}

// Manifest returns the loaded manifest
func (p *Packager) Manifest() *manifest.Manifest {
	return p.manifest
}

// GetItem returns the catalog entry for name
func (p *Packager) GetItem(name string) (manifest.Item, error) {
	item, ok := p.manifest.Item(name)
	if !ok {
		return manifest.Item{}, domain.NewItemNotFoundError(name)
	}
	return item, nil
}

// Items returns every catalog entry in declaration order
func (p *Packager) Items() []manifest.Item {
	return p.manifest.Contents.Items()
}

// AddMinifier registers m for its type, replacing any previous one
func (p *Packager) AddMinifier(m domain.Minifier) {
	p.minifiers.Add(m)
}

// GetMinifier returns the minifier registered for contentType
func (p *Packager) GetMinifier(contentType string) (domain.Minifier, error) {
	return p.minifiers.Get(contentType)
}

// CurrentPackage returns the package built by the last call
func (p *Packager) CurrentPackage() *Package {
	return p.pkg
}

func (p *Packager) reset() {
	p.pkg = newPackage()
	p.visiting = make(map[string]bool)
}
