package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxUtteranceLength is the maximum length for user utterances in logs
	MaxUtteranceLength = 500
	// MaxSessionIDLength is the maximum length for session IDs in logs
	MaxSessionIDLength = 128
	// MaxErrorMessageLength is the maximum length for error messages in logs
	MaxErrorMessageLength = 1000
	// MaxGeneralStringLength is the maximum length for general strings in logs
	MaxGeneralStringLength = 2000
)

// SanitizeUtterance sanitizes raw user speech for safe logging.
// Removes control characters, truncates, and validates UTF-8 so a
// malicious transcription cannot inject fake log lines.
func SanitizeUtterance(text string) string {
	return SanitizeString(text, MaxUtteranceLength)
}

// SanitizeSessionID sanitizes a session ID for safe logging
func SanitizeSessionID(sessionID string) string {
	return SanitizeString(sessionID, MaxSessionIDLength)
}

// SanitizeString sanitizes a general string for safe logging
// Removes control characters, truncates to maxLength, and validates UTF-8
func SanitizeString(s string, maxLength int) string {
	if s == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = MaxGeneralStringLength
	}
	s = sanitizeFilterRunes(s)
	if len(s) > maxLength {
		s = s[:maxLength] + "..."
	}
	return s
}

// sanitizeFilterRunes validates UTF-8 and removes control characters (keeps printable, space, tab, newline, CR).
func sanitizeFilterRunes(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// SanitizeError sanitizes an error message for safe logging
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error(), MaxErrorMessageLength)
}
