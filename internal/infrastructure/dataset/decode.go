package dataset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported source encodings, in the order they are tried by default.
const (
	EncodingUTF8    = "utf-8"
	EncodingLatin1  = "latin-1"
	EncodingISO8859 = "iso-8859-1"
	EncodingCP1252  = "cp1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func lookupEncoding(name string) (encoding.Encoding, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EncodingUTF8, "utf8":
		return unicode.UTF8, true
	case EncodingLatin1, "latin1", EncodingISO8859, "iso8859-1":
		return charmap.ISO8859_1, true
	case EncodingCP1252, "windows-1252":
		return charmap.Windows1252, true
	default:
		return nil, false
	}
}

// decode converts raw to UTF-8 text.  UTF-8 is accepted only when raw is
// valid UTF-8; the single-byte charsets accept any input but reject results
// containing control characters other than tab, CR and LF.
func decode(raw []byte, name string) (string, bool) {
	enc, ok := lookupEncoding(name)
	if !ok {
		return "", false
	}
	if enc == unicode.UTF8 {
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", false
	}
	text := string(out)
	if strings.ContainsFunc(text, isStrayControl) {
		return "", false
	}
	return text, true
}

func isStrayControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return r < 0x20 || (r >= 0x7F && r < 0xA0)
}

//Personal.AI order the ending
