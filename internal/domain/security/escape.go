package security

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ScriptString returns s as a single-quoted JavaScript string literal that is
// safe to splice into a script, including one inlined in an HTML document.
func ScriptString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '<':
			b.WriteString(`\x3C`)
		case '>':
			b.WriteString(`\x3E`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// JSONString returns s encoded as a JSON string value, quotes included. The
// encoding escapes <, > and & and the JavaScript line terminators, so the
// result is also a valid script expression inside an HTML document.
func JSONString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		return `""`
	}
	return string(out)
}
