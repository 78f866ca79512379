package xmltext

import "unicode/utf8"

// isValidXMLChar reports whether r is a valid XML 1.0 character.
// Per XML 1.0 spec section 2.2, Char excludes most control codes.
func isValidXMLChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}

// validateXMLText checks characters and entity references in raw text or
// attribute bytes. It returns the index of the offending byte on failure.
func validateXMLText(data []byte) (int, error) {
	for i := 0; i < len(data); {
		if data[i] == '&' {
			consumed, _, err := parseEntityRef(data, i)
			if err != nil {
				return i, err
			}
			i += consumed
			continue
		}
		if data[i] < utf8.RuneSelf {
			if !isValidXMLChar(rune(data[i])) {
				return i, errInvalidChar
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i, errInvalidChar
		}
		if !isValidXMLChar(r) {
			return i, errInvalidChar
		}
		i += size
	}
	return 0, nil
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isWhitespaceBytes(data []byte) bool {
	for _, b := range data {
		if !isWhitespace(b) {
			return false
		}
	}
	return true
}

// validateXMLChars checks that data is valid UTF-8 made of XML characters.
// It returns the index of the offending byte on failure.
func validateXMLChars(data []byte) (int, error) {
	for i := 0; i < len(data); {
		if data[i] < utf8.RuneSelf {
			if !isValidXMLChar(rune(data[i])) {
				return i, errInvalidChar
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i, errInvalidChar
		}
		if !isValidXMLChar(r) {
			return i, errInvalidChar
		}
		i += size
	}
	return 0, nil
}
