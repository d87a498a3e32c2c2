package scoring

import "strings"

// punctReplacer swaps the punctuation characters that commonly glue phrases
// together for spaces. It does not collapse the resulting double spaces;
// callers only rely on substring containment.
var punctReplacer = strings.NewReplacer(
	".", " ", ",", " ", "/", " ", "#", " ", "!", " ", "$", " ",
	"%", " ", "^", " ", "&", " ", "*", " ", ";", " ", ":", " ",
	"{", " ", "}", " ", "=", " ", "-", " ", "_", " ", "`", " ",
	"~", " ", "(", " ", ")", " ", "[", " ", "]", " ", `"`, " ",
)

// NormalizeText lowercases the input and replaces punctuation with spaces so
// phrase checks are punctuation-insensitive.
func NormalizeText(value string) string {
	return punctReplacer.Replace(strings.ToLower(value))
}

// ContainsAny reports whether the normalized source contains any of the
// given phrases. Both sides are normalized so "1.6.1170 compatible" matches
// text that spells the version with dots. Matching is pure substring
// containment with no word boundaries, so "compatible" also matches inside
// "incompatible". That coarseness is part of the rule calibration and must
// not be tightened.
func ContainsAny(source string, phrases []string) bool {
	haystack := NormalizeText(source)
	for _, phrase := range phrases {
		if strings.Contains(haystack, NormalizeText(phrase)) {
			return true
		}
	}
	return false
}

// CountMatches counts how many of the phrases appear in the source. Each
// phrase counts at most once regardless of how often it occurs.
func CountMatches(source string, phrases []string) int {
	haystack := NormalizeText(source)
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(haystack, NormalizeText(phrase)) {
			count++
		}
	}
	return count
}

// Snippet truncates text to limit characters, appending an ellipsis when it
// had to cut. The cut is not word-boundary aware.
func Snippet(text string, limit int) string {
	if text == "" || limit <= 0 {
		return ""
	}
	if len(text) <= limit {
		return text
	}
	// Too small to fit the ellipsis, return the bare cut.
	if limit <= 3 {
		return text[:limit]
	}
	return strings.TrimSpace(text[:limit-3]) + "..."
}
