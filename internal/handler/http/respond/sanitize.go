package respond

import (
	"regexp"
)

var (
	// API key patterns. The Anthropic pattern must be applied before the
	// OpenAI one since sk-ant- keys also match the broader sk- prefix.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Database credentials embedded in a DSN.
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError returns the error message with secrets masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
