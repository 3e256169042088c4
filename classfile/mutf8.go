package classfile

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// decodeModifiedUtf8 decodes a Utf8 entry. Well-formed UTF-8 is accepted
// as is. On top of it, the two forms javac writes are understood: C0 80
// for NUL and a supplementary character as a pair of 3-byte surrogates.
// Every other overlong form, unpaired surrogate or stray byte fails.
func decodeModifiedUtf8(b []byte) (string, bool) {
	if utf8.Valid(b) {
		return string(b), true
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		switch {
		case b[i] == 0xC0 && i+1 < len(b) && b[i+1] == 0x80:
			sb.WriteByte(0)
			i += 2
		case b[i] == 0xED && i+1 < len(b) && b[i+1] >= 0xA0:
			hi, ok := surrogate(b, i, 0xA0)
			if !ok {
				return "", false
			}
			lo, ok := surrogate(b, i+3, 0xB0)
			if !ok {
				return "", false
			}
			sb.WriteRune(utf16.DecodeRune(hi, lo))
			i += 6
		default:
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", false
			}
			sb.Write(b[i : i+size])
			i += size
		}
	}
	return sb.String(), true
}

// surrogate decodes the 3-byte surrogate at b[i]. high is 0xA0 for a
// leading (D800-DBFF) and 0xB0 for a trailing (DC00-DFFF) half.
func surrogate(b []byte, i int, high byte) (rune, bool) {
	if i+2 >= len(b) || b[i] != 0xED || b[i+1]&0xF0 != high || !continuation(b[i+2]) {
		return 0, false
	}
	return 0xD000 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F), true
}

func continuation(c byte) bool {
	return c&0xC0 == 0x80
}
