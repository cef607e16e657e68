package normalize

import "unicode"

// IsEnglish classifies text as predominantly English when at least half
// of its non-whitespace characters are ASCII letters. This is a coarse
// market filter, not a language detector; empty text is not English.
func IsEnglish(text string) bool {
	letters, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	if total == 0 {
		return false
	}
	return float64(letters)/float64(total) >= 0.5
}
