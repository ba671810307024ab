package schema

import "strings"

// maxColumnNameLength is BigQuery's limit for column names.
const maxColumnNameLength = 128

func isAlnum(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isLetter(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// SanitizeColumnName rewrites a CSV header into a valid BigQuery column name:
// non alphanumeric characters become underscores, consecutive underscores
// collapse into one, the name must start with a letter or underscore and is
// capped at 128 characters.
func SanitizeColumnName(name string) string {
	var b strings.Builder

	lastUnderscore := false

	for _, c := range name {
		if isAlnum(c) {
			b.WriteRune(c)
			lastUnderscore = false

			continue
		}

		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	sanitized := strings.TrimSuffix(b.String(), "_")
	if sanitized == "" {
		return "_"
	}

	if first := rune(sanitized[0]); !isLetter(first) && first != '_' {
		sanitized = "_" + sanitized
	}

	if len(sanitized) > maxColumnNameLength {
		sanitized = sanitized[:maxColumnNameLength]
	}

	return sanitized
}
