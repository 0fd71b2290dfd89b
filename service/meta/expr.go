package meta

import (
	"os"
	"strings"
	"unicode"
)

// expandEnvExpr replaces every ${env.KEY} occurrence with the value of the
// environment variable KEY, or "" when unset. Malformed expressions are
// left literal.
func expandEnvExpr(value string) string {
	const prefix = "${env."
	var b strings.Builder
	for {
		idx := strings.Index(value, prefix)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(prefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 || !validKey(rest[:end]) {
			b.WriteString(prefix)
			value = rest
			continue
		}
		b.WriteString(os.Getenv(rest[:end]))
		value = rest[end+1:]
	}
}

func validKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
