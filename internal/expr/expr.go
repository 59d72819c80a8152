// Package expr expands ${env.KEY} expressions in configuration text.
package expr

import (
	"os"
	"strings"
	"unicode"
)

// ExpandEnv replaces every occurrence of ${env.KEY} in value with the content
// of the environment variable KEY, or "" when unset.
func ExpandEnv(value string) string {
	const prefix = "${env."
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], prefix)
		if idx < 0 {
			b.WriteString(value[i:])
			break
		}
		b.WriteString(value[i : i+idx])
		startKey := i + idx + len(prefix)

		endKey := strings.IndexByte(value[startKey:], '}')
		if endKey < 0 {
			// no closing brace, keep the rest literal
			b.WriteString(value[i+idx:])
			break
		}
		key := value[startKey : startKey+endKey]
		if isEnvKey(key) {
			b.WriteString(os.Getenv(key))
			i = startKey + endKey + 1
			continue
		}
		// invalid expression, keep the detected prefix as literal text and
		// rescan the remainder so nested expressions still expand
		b.WriteString(value[i+idx : startKey])
		i = startKey
	}
	return b.String()
}

// isEnvKey reports whether key consists solely of letters, digits or '_'.
// The empty key is accepted and expands to "".
func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
