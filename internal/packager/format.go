package packager

import (
	"path/filepath"
	"strings"

	"github.com/milesj/packager/internal/utils"
)

// FormatName replaces {name} with the slugged manifest name and {version} with
// the lower-cased manifest version
func (p *Packager) FormatName(template string) string {
	template = strings.ReplaceAll(template, "{name}", utils.Slugify(p.manifest.Name))
	template = strings.ReplaceAll(template, "{version}", utils.Lower(p.manifest.Version))
	return template
}

// resolveOutput returns the formatted destination for path. With prependPath,
// a relative path is placed under the manifest base directory.
func (p *Packager) resolveOutput(path string, prependPath bool) string {
	path = filepath.FromSlash(path)
	if prependPath && !filepath.IsAbs(path) && !utils.HasPathPrefix(path, p.manifest.BaseDir) {
		path = filepath.Join(p.manifest.BaseDir, path)
	}
	return p.FormatName(path)
}
