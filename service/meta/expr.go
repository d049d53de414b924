package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} in value with the KEY environment
// variable, or "" if unset. Other ${...} expressions are left untouched.
func ExpandEnv(value string) string {
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], envPrefix)
		if idx < 0 {
			b.WriteString(value[i:])
			break
		}
		b.WriteString(value[i : i+idx])
		start := i + idx + len(envPrefix)
		end := strings.IndexByte(value[start:], '}')
		if end < 0 {
			b.WriteString(value[i+idx:])
			break
		}
		key := value[start : start+end]
		if !isEnvKey(key) {
			// keep the prefix literal and rescan what follows it
			b.WriteString(envPrefix)
			i = start
			continue
		}
		b.WriteString(os.Getenv(key))
		i = start + end + 1
	}
	return b.String()
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
