package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/kiteco/jsparse/kite-golib/errors"
)

// Unquote decodes the source text of a string literal, quotes included.
// Unknown escapes stand for the escaped character and escaped line
// terminators are dropped.
func Unquote(lit string) (string, error) {
	if len(lit) < 2 {
		return "", errors.Errorf("invalid string literal %q", lit)
	}
	quote := lit[0]
	if quote != '"' && quote != '\'' || lit[len(lit)-1] != quote {
		return "", errors.Errorf("invalid string literal %q", lit)
	}
	s := lit[1 : len(lit)-1]
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			return "", errors.Errorf("trailing backslash in %q", lit)
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// legacy octal escape, at most three digits and never above 0377
			v := r - '0'
			for n := 1; n < 3 && i < len(s) && '0' <= s[i] && s[i] <= '7'; n++ {
				if v*8+rune(s[i]-'0') > 0377 {
					break
				}
				v = v*8 + rune(s[i]-'0')
				i++
			}
			b.WriteRune(v)
		case 'x', 'u':
			n := 2
			if r == 'u' {
				n = 4
			}
			if i+n > len(s) {
				return "", errors.Errorf("short escape in %q", lit)
			}
			var v rune
			for _, d := range s[i : i+n] {
				dv := digitVal(d)
				if dv >= 16 {
					return "", errors.Errorf("invalid hex escape in %q", lit)
				}
				v = v*16 + rune(dv)
			}
			i += n
			b.WriteRune(v)
		case '\r':
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case '\n', 0x2028, 0x2029:
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}
