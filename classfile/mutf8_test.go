package classfile

import "testing"

func TestDecodeModifiedUtf8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
		ok    bool
	}{
		{"ascii", []byte("java/lang/Object"), "java/lang/Object", true},
		{"empty", []byte{}, "", true},
		{"two byte", []byte{0xC3, 0xA9}, "é", true},
		{"encoded nul", []byte{'a', 0xC0, 0x80, 'b'}, "a\x00b", true},
		{"raw nul", []byte{'a', 0x00, 'b'}, "a\x00b", true},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€", true},
		{"last before surrogates", []byte{0xED, 0x9F, 0xBF}, "\uD7FF", true},
		{"surrogate pair", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "😀", true},
		{"four byte", []byte{0xF0, 0x9F, 0x98, 0x80}, "😀", true},
		{"mixed forms", []byte{0xC0, 0x80, 0xF0, 0x9F, 0x98, 0x80, 0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "\x00😀😀", true},
		{"replacement char", []byte{0xEF, 0xBF, 0xBD}, "\uFFFD", true},
		{"overlong slash", []byte("java\xC0\xAFlang\xC0\xAFObject"), "", false},
		{"overlong two byte", []byte{0xC1, 0x81}, "", false},
		{"lone C0", []byte{0xC0}, "", false},
		{"overlong three byte", []byte{0xE0, 0x80, 0xAF}, "", false},
		{"overlong four byte", []byte{0xF0, 0x80, 0x80, 0xAF}, "", false},
		{"lone high surrogate", []byte{0xED, 0xA0, 0xBD, 'x'}, "", false},
		{"high surrogate at end", []byte{0xED, 0xA0, 0xBD}, "", false},
		{"lone low surrogate", []byte{0xED, 0xB8, 0x80}, "", false},
		{"two high surrogates", []byte{0xED, 0xA0, 0xBD, 0xED, 0xA0, 0xBD}, "", false},
		{"above unicode", []byte{0xF4, 0x90, 0x80, 0x80}, "", false},
		{"stray continuation", []byte{0x80}, "", false},
		{"short two byte", []byte{0xC3}, "", false},
		{"short three byte", []byte{0xE2, 0x82}, "", false},
		{"bad continuation", []byte{0xE2, 0x28, 0xA1}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeModifiedUtf8(tt.input)
			if ok != tt.ok {
				t.Fatalf("decodeModifiedUtf8(% x) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("decodeModifiedUtf8(% x) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
