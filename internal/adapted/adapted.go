// Use of code in this package is governed by Go's BSD-style license.

// Package adapted contains functions adapted from Go's standard library.
//nolint:gomnd
package adapted

import (
	"unicode"
	"unicode/utf8"
)

// Quote returns s as a double-quoted string literal. Every escape it
// produces is one that github.com/michaelmacinnis/adapted.ActualBytes
// decodes, so reading the result gives back the original bytes.
func Quote(s string) string {
	buf := make([]byte, 0, 3*len(s)/2) // Try to avoid more allocations.

	buf = append(buf, '"')

	for width := 0; len(s) > 0; s = s[width:] {
		r := rune(s[0])
		width = 1

		if r >= utf8.RuneSelf {
			r, width = utf8.DecodeRuneInString(s)
		}

		if width == 1 && r == utf8.RuneError {
			buf = append(buf, `\x`...)
			buf = append(buf, hex(rune(s[0]>>4)))
			buf = append(buf, hex(rune(s[0])))

			continue
		}

		// Append escaped rune.
		switch r {
		case '\a':
			buf = append(buf, `\a`...)
		case '\b':
			buf = append(buf, `\b`...)
		case '\f':
			buf = append(buf, `\f`...)
		case '\n':
			buf = append(buf, `\n`...)
		case '\r':
			buf = append(buf, `\r`...)
		case '\t':
			buf = append(buf, `\t`...)
		case '\v':
			buf = append(buf, `\v`...)
		case '"':
			buf = append(buf, `\"`...)
		case '\\':
			buf = append(buf, `\\`...)
		default:
			switch {
			case r < ' ' || r == 0x7f:
				buf = append(buf, `\x`...)
				buf = append(buf, hex(r>>4))
				buf = append(buf, hex(r))
			case r < utf8.RuneSelf || unicode.IsPrint(r):
				buf = append(buf, s[:width]...)
			case r < 0x10000:
				buf = append(buf, `\u`...)
				for s := 12; s >= 0; s -= 4 {
					buf = append(buf, hex(r>>uint(s)))
				}
			default:
				buf = append(buf, `\U`...)
				for s := 28; s >= 0; s -= 4 {
					buf = append(buf, hex(r>>uint(s)))
				}
			}
		}
	}

	buf = append(buf, '"')

	return string(buf)
}

func hex(n rune) byte {
	return "0123456789abcdef"[n&0xF]
}
