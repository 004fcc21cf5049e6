package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	errInvalidText = errors.New("invalid byte sequence for encoding")
	errNotASCII    = errors.New("byte is not ASCII")
)

// WHATWG folds these into windows-1252, which accepts bytes the named codecs
// do not.
var encodingOverrides = map[string]encoding.Encoding{
	"ascii":      asciiCodec,
	"us-ascii":   asciiCodec,
	"usascii":    asciiCodec,
	"latin1":     charmap.ISO8859_1,
	"latin-1":    charmap.ISO8859_1,
	"l1":         charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"iso8859-1":  charmap.ISO8859_1,
	"iso88591":   charmap.ISO8859_1,
}

// asciiCodec is a strict 7-bit codec: bytes and runes at or above 0x80 fail in
// both directions.
var asciiCodec encoding.Encoding = asciiEncoding{}

type asciiEncoding struct{}

func (asciiEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: asciiTransformer{}}
}

func (asciiEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: asciiTransformer{}}
}

func (asciiEncoding) String() string { return "US-ASCII" }

// asciiTransformer copies bytes below 0x80. Any other byte is either not
// ASCII or the start of a multi-byte UTF-8 rune, both are rejected.
type asciiTransformer struct{ transform.NopResetter }

func (asciiTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b >= utf8.RuneSelf {
			return nDst, nSrc, fmt.Errorf("%w: 0x%02x at offset %d", errNotASCII, b, nSrc)
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// lookupEncoding resolves WHATWG labels first, then IANA and MIME names.
// Python style names such as "utf_8" or "latin_1" are accepted too, and
// ascii/latin-1 names map to the codecs they name rather than windows-1252.
func lookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return unicode.UTF8, nil
	}

	candidates := []string{
		name,
		strings.ReplaceAll(name, "_", "-"),
		strings.NewReplacer("_", "", "-", "").Replace(name),
	}
	for _, n := range candidates {
		if enc, ok := encodingOverrides[n]; ok {
			return enc, nil
		}
	}
	for _, n := range candidates {
		if enc, err := htmlindex.Get(n); err == nil {
			return enc, nil
		}
		for _, index := range []*ianaindex.Index{ianaindex.IANA, ianaindex.MIME} {
			enc, err := index.Encoding(n)
			if err == nil && enc != nil {
				return enc, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

func encodeText(enc encoding.Encoding, s string) ([]byte, error) {
	if isUTF8(enc) {
		return []byte(s), nil
	}
	return enc.NewEncoder().Bytes([]byte(s))
}

// decodeText fails where a strict codec would. The x/text decoders replace
// malformed input with U+FFFD, so the replacement rune counts as a failure.
func decodeText(enc encoding.Encoding, b []byte) (string, error) {
	if isUTF8(enc) {
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w: % x", errInvalidText, b)
		}
		return string(b), nil
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("%w: % x", errInvalidText, b)
	}
	return string(out), nil
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == nil || enc == unicode.UTF8
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
