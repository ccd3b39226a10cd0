package utils

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

var (
	nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)

	// charsetRuleRegex matches a leading CSS @charset rule
	charsetRuleRegex = regexp.MustCompile(`^@charset\s+["']([A-Za-z0-9._:-]+)["']\s*;`)
)

// DecodeSource converts raw file content to UTF-8.
//
// A UTF-8 byte order mark is stripped and UTF-16 content marked with a BOM is
// transcoded. Content that is still not valid UTF-8 is decoded from the
// charset named by a leading @charset rule, falling back to windows-1252.
func DecodeSource(content []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source: %w", err)
	}
	if utf8.Valid(out) {
		return out, nil
	}

	enc := legacyEncoding(out)
	decoded, _, err := transform.Bytes(enc.NewDecoder(), out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source: %w", err)
	}
	return decoded, nil
}

// legacyEncoding picks the encoding of non UTF-8 content
func legacyEncoding(content []byte) encoding.Encoding {
	if m := charsetRuleRegex.FindSubmatch(content); m != nil {
		if enc, err := htmlindex.Get(string(m[1])); err == nil {
			return enc
		}
	}
	enc, _, _ := charset.DetermineEncoding(content, "")
	return enc
}

// Lower lower-cases s
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Slugify lower-cases s and replaces every run of characters outside
// [a-z0-9] with a single dash
func Slugify(s string) string {
	return nonSlugRegex.ReplaceAllString(Lower(s), "-")
}
