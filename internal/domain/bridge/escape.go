package bridge

import "strings"

const hexDigits = "0123456789abcdef"

// EscapeJSLiteral escapes s so it can be placed between double quotes in a
// JavaScript source string.
//
// The escaper works on bytes. Printable ASCII is copied, the usual control
// characters get their short escapes and every other byte becomes \xHH. A
// hex escape (or \0) is never followed by a literal hex digit: such a digit
// is escaped too, so "\0" + "1" can not turn into an octal sequence.
func EscapeJSLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	lastWasHexEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '\t':
			b.WriteString(`\t`)
			lastWasHexEscape = false
		case '\r':
			b.WriteString(`\r`)
			lastWasHexEscape = false
		case '\n':
			b.WriteString(`\n`)
			lastWasHexEscape = false
		case '\\':
			b.WriteString(`\\`)
			lastWasHexEscape = false
		case '"':
			b.WriteString(`\"`)
			lastWasHexEscape = false
		case 0:
			b.WriteString(`\0`)
			lastWasHexEscape = true
		default:
			if c >= 32 && c < 127 && !(lastWasHexEscape && isHexDigit(c)) {
				b.WriteByte(c)
				lastWasHexEscape = false
				continue
			}
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
			lastWasHexEscape = true
		}
	}

	return b.String()
}

// FunctionCall renders a call of the page function name with param as its
// single string argument.
func FunctionCall(name, param string) string {
	var b strings.Builder
	b.Grow(len(name) + len(param) + 6)
	b.WriteString(name)
	b.WriteString(`("`)
	b.WriteString(EscapeJSLiteral(param))
	b.WriteString(`");`)
	return b.String()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
