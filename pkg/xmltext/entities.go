package xmltext

import (
	"bytes"
	"unicode/utf8"
)

var standardEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// Unescape expands entity and character references in raw text.
func Unescape(data []byte) (string, error) {
	if bytes.IndexByte(data, '&') < 0 {
		return string(data), nil
	}
	out, err := unescapeInto(make([]byte, 0, len(data)), data, false)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// UnescapeAttr expands references in a raw attribute value and applies
// attribute value normalization: literal tabs and line ends become spaces,
// while whitespace written as character references is kept.
func UnescapeAttr(data []byte) (string, error) {
	if bytes.IndexAny(data, "&\t\n\r") < 0 {
		return string(data), nil
	}
	out, err := unescapeInto(make([]byte, 0, len(data)), data, true)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func unescapeInto(dst []byte, data []byte, normalize bool) ([]byte, error) {
	for i := 0; i < len(data); i++ {
		if data[i] != '&' {
			c := data[i]
			if normalize {
				switch c {
				case '\r':
					if i+1 < len(data) && data[i+1] == '\n' {
						continue
					}
					c = ' '
				case '\t', '\n':
					c = ' '
				}
			}
			dst = append(dst, c)
			continue
		}
		consumed, replacement, err := parseEntityRef(data, i)
		if err != nil {
			return nil, err
		}
		dst = append(dst, replacement...)
		i += consumed - 1
	}
	return dst, nil
}

func parseEntityRef(data []byte, start int) (int, string, error) {
	if start+1 >= len(data) {
		return 0, "", errInvalidEntity
	}
	semi := bytes.IndexByte(data[start+1:], ';')
	if semi < 0 {
		return 0, "", errInvalidEntity
	}
	semi += start + 1
	if semi == start+1 {
		return 0, "", errInvalidEntity
	}
	ref := data[start+1 : semi]
	if ref[0] == '#' {
		r, err := parseNumericEntity(ref)
		if err != nil {
			return 0, "", err
		}
		return semi - start + 1, string(r), nil
	}
	replacement, ok := standardEntities[string(ref)]
	if !ok {
		return 0, "", errInvalidEntity
	}
	return semi - start + 1, replacement, nil
}

func parseNumericEntity(ref []byte) (rune, error) {
	if len(ref) < 2 {
		return 0, errInvalidCharRef
	}
	base := 10
	start := 1
	if ref[1] == 'x' {
		base = 16
		start = 2
	}
	if start >= len(ref) {
		return 0, errInvalidCharRef
	}
	var value uint64
	for i := start; i < len(ref); i++ {
		b := ref[i]
		var digit byte
		switch {
		case b >= '0' && b <= '9':
			digit = b - '0'
		case base == 16 && b >= 'a' && b <= 'f':
			digit = b - 'a' + 10
		case base == 16 && b >= 'A' && b <= 'F':
			digit = b - 'A' + 10
		default:
			return 0, errInvalidCharRef
		}
		value = value*uint64(base) + uint64(digit)
		if value > utf8.MaxRune {
			return 0, errInvalidCharRef
		}
	}
	r := rune(value)
	if !isValidXMLChar(r) {
		return 0, errInvalidCharRef
	}
	return r, nil
}

// AppendEscapedText appends s to dst escaped for character data.
func AppendEscapedText(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			dst = append(dst, "&gt;"...)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// AppendEscapedAttr appends s to dst escaped for a double-quoted attribute
// value. Whitespace other than space is written as character references so
// attribute value normalization keeps it.
func AppendEscapedAttr(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			dst = append(dst, "&gt;"...)
		case '"':
			dst = append(dst, "&quot;"...)
		case '\t':
			dst = append(dst, "&#9;"...)
		case '\n':
			dst = append(dst, "&#10;"...)
		case '\r':
			dst = append(dst, "&#13;"...)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}
