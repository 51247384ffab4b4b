package validation

import (
	"strings"
	"unicode"
)

// IsValidQuery checks whether an utterance looks like a meaningful question
// rather than gibberish. This is a lenient gate: we would rather process a
// slightly odd question than reject a valid one.
func IsValidQuery(query string) bool {
	trimmed := strings.TrimSpace(query)

	if len(trimmed) < 3 || len(trimmed) > 10000 {
		return false
	}

	words := strings.Fields(trimmed)
	if len(words) < 2 {
		// A single word can still be valid if it has some substance.
		return len(words) == 1 && len(words[0]) >= 3 && !isRepeatedCharacters(words[0])
	}

	if hasExcessiveRepetition(trimmed) {
		return false
	}

	letterCount := 0
	totalChars := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letterCount++
		}
		if !unicode.IsSpace(r) {
			totalChars++
		}
	}
	if totalChars == 0 || float64(letterCount)/float64(totalChars) < 0.3 {
		return false
	}

	if hasKeyboardMashing(trimmed) {
		return false
	}

	return true
}

func isRepeatedCharacters(s string) bool {
	if len(s) < 3 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// hasExcessiveRepetition flags 4+ consecutive identical characters.
func hasExcessiveRepetition(s string) bool {
	count := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] && !unicode.IsSpace(rune(s[i])) {
			count++
			if count >= 4 {
				return true
			}
		} else {
			count = 1
		}
	}
	return false
}

var mashingSequences = []string{"asdf", "qwer", "zxcv", "hjkl", "wasd", "jkl;"}

func hasKeyboardMashing(s string) bool {
	lower := strings.ToLower(s)
	for _, seq := range mashingSequences {
		if strings.Contains(lower, seq) {
			return true
		}
	}
	return false
}
