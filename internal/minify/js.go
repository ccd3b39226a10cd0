package minify

import (
	"bytes"
	"fmt"

	"github.com/milesj/packager/internal/config"
	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

const jsMediaType = "application/javascript"

// JS minifies scripts
type JS struct {
	m *tdminify.M
}

// NewJS creates a script minifier from cfg
func NewJS(cfg config.JSMinifyConfig) *JS {
	m := tdminify.New()
	m.Add(jsMediaType, &js.Minifier{
		KeepVarNames: cfg.KeepVarNames,
		Precision:    cfg.Precision,
	})
	return &JS{m: m}
}

// Type returns "js"
func (j *JS) Type() string {
	return "js"
}

// Minify minifies src. The output always ends with a statement terminator so
// that minified scripts can be concatenated without a separator.
func (j *JS) Minify(src []byte) ([]byte, error) {
	out, err := j.m.Bytes(jsMediaType, src)
	if err != nil {
		return nil, fmt.Errorf("failed to minify script: %w", err)
	}
	out = bytes.TrimRight(out, " \t\r\n")
	if len(out) > 0 && out[len(out)-1] != ';' {
		out = append(out, ';')
	}
	return out, nil
}
