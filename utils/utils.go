package utils

import (
	"regexp"
	"strings"
)

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

var channelNameInvalidChars = regexp.MustCompile(`[^a-z0-9-_]+`)

// SanitizeChannelName converts an arbitrary display name into something
// Slack accepts as a channel name: lowercase, no spaces, restricted charset,
// at most 21 characters so the caller still has room for a prefix.
func SanitizeChannelName(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	result = strings.ReplaceAll(result, " ", "-")
	result = channelNameInvalidChars.ReplaceAllString(result, "")
	result = strings.Trim(result, "-")
	if result == "" {
		result = "atendente"
	}
	if len(result) > 21 {
		result = result[:21]
	}
	return result
}
