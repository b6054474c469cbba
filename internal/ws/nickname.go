package ws

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultNickname = "Player"
	minNickname     = 2
	maxNickname     = 12
)

func nicknameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == ' ':
		return true
	case r >= 0x0400 && r <= 0x04FF: // Cyrillic
		return true
	}
	return false
}

// sanitizeNickname keeps letters, digits, '_', '-' and inner spaces, capped
// at maxNickname runes. Anything shorter than minNickname becomes the default.
func sanitizeNickname(raw string) string {
	if !utf8.ValidString(raw) {
		return defaultNickname
	}
	var b strings.Builder
	n := 0
	for _, r := range raw {
		if n == maxNickname {
			break
		}
		if nicknameRune(r) {
			b.WriteRune(r)
			n++
		}
	}
	name := strings.TrimSpace(b.String())
	if utf8.RuneCountInString(name) < minNickname {
		return defaultNickname
	}
	return name
}
