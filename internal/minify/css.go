package minify

import (
	"fmt"

	"github.com/milesj/packager/internal/config"
	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

const cssMediaType = "text/css"

// CSS minifies stylesheets
type CSS struct {
	m *tdminify.M
}

// NewCSS creates a stylesheet minifier from cfg
func NewCSS(cfg config.CSSMinifyConfig) *CSS {
	m := tdminify.New()
	m.Add(cssMediaType, &css.Minifier{
		KeepCSS2:  cfg.KeepCSS2,
		Precision: cfg.Precision,
	})
	return &CSS{m: m}
}

// Type returns "css"
func (c *CSS) Type() string {
	return "css"
}

// Minify minifies src
func (c *CSS) Minify(src []byte) ([]byte, error) {
	out, err := c.m.Bytes(cssMediaType, src)
	if err != nil {
		return nil, fmt.Errorf("failed to minify stylesheet: %w", err)
	}
	return out, nil
}
