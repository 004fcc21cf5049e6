package main

import (
	"bytes"
	"encoding/hex"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

type snForm int

func (f snForm) String() string {
	switch f {
	case snFormASCII:
		return "ascii"
	case snFormHex:
		return "hex"
	default:
		return "<unknown>"
	}
}

const (
	snFormUnknown = snForm(iota)
	snFormASCII
	snFormHex
)

const (
	asciiFormLen = 12
	hexFormLen   = 16
)

func formOf(n int) snForm {
	switch n {
	case asciiFormLen:
		return snFormASCII
	case hexFormLen:
		return snFormHex
	default:
		return snFormUnknown
	}
}

// Converter turns an ASCII form serial number (HWTC542D049B) into its HEX form
// (48575443542D049B) and back. A nil Encoding means UTF-8.
//
// With Strict set, a decode failure inside a recognized form is returned as
// ErrParse with the cause attached, otherwise it is reported as
// ErrUnrecognizedFormat.
type Converter struct {
	Encoding encoding.Encoding
	Strict   bool
}

// Convert resolves encodingName and converts sn using it.
func Convert(sn string, encodingName string, strict bool) (string, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	return Converter{Encoding: enc, Strict: strict}.ConvertString(sn)
}

// ConvertString encodes sn with the converter's encoding and converts it.
func (c Converter) ConvertString(sn string) (string, error) {
	result, _, err := c.convertText(sn)
	return result, err
}

func (c Converter) convertText(sn string) (string, snForm, error) {
	b, err := encodeText(c.encoding(), sn)
	if err != nil {
		return "", snFormUnknown, &SNError{Kind: ErrEncode, Input: []byte(sn), Cause: err}
	}
	return c.convert(b)
}

func (c Converter) Convert(sn []byte) (string, error) {
	result, _, err := c.convert(sn)
	return result, err
}

func (c Converter) convert(sn []byte) (string, snForm, error) {
	sn = bytes.ReplaceAll(sn, []byte("-"), nil)
	form := formOf(len(sn))

	var (
		result string
		ok     bool
		err    error
	)
	switch form {
	case snFormASCII:
		result, ok, err = c.asciiToHex(sn)
	case snFormHex:
		result, err = c.hexToASCII(sn)
		ok = err == nil
	}

	if err != nil && c.Strict {
		return "", form, &SNError{Kind: ErrParse, Input: sn, Cause: err}
	}
	if !ok {
		return "", form, unrecognized(sn)
	}
	return result, form, nil
}

// asciiToHex reports ok=false when the vendor prefix is not pure ASCII. The
// suffix is passed through uppercased, it is not checked for hex digits.
func (c Converter) asciiToHex(sn []byte) (string, bool, error) {
	prefix, err := decodeText(c.encoding(), sn[:4])
	if err != nil {
		return "", false, err
	}
	suffix, err := decodeText(c.encoding(), sn[4:])
	if err != nil {
		return "", false, err
	}

	if !isASCII(prefix) {
		return "", false, nil
	}
	return strings.ToUpper(hex.EncodeToString(sn[:4])) + strings.ToUpper(suffix), true, nil
}

func (c Converter) hexToASCII(sn []byte) (string, error) {
	raw := make([]byte, hex.DecodedLen(8))
	if _, err := hex.Decode(raw, sn[:8]); err != nil {
		return "", err
	}

	prefix, err := decodeText(c.encoding(), raw)
	if err != nil {
		return "", err
	}
	suffix, err := decodeText(c.encoding(), sn[8:])
	if err != nil {
		return "", err
	}
	return prefix + strings.ToUpper(suffix), nil
}

func (c Converter) encoding() encoding.Encoding {
	if c.Encoding == nil {
		return unicode.UTF8
	}
	return c.Encoding
}
