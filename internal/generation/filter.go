package generation

import "strings"

var toxicWords = []string{
	"fuck", "shit", "idiot", "bitch",
	"hurensohn", "arschloch",
}

var inappropriatePhrases = []string{
	"öl mich ein", "leck mich", "mach mich",
	"sex", "nackt", "fetisch",
}

// Matching is a plain substring test on the lowercased text, so "sextant"
// counts as inappropriate.
func IsToxic(text string) bool {
	return containsAny(strings.ToLower(text), toxicWords)
}

func IsInappropriate(text string) bool {
	return containsAny(strings.ToLower(text), inappropriatePhrases)
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

var roleMarkers = []string{"user:", "assistant:", "bot:"}

// CleanOutput keeps the first line of raw model output and cuts it at the
// first role marker the model may have hallucinated.
func CleanOutput(raw string) string {
	line, _, _ := strings.Cut(raw, "\n")
	lower := strings.ToLower(line)
	if len(lower) != len(line) {
		// byte offsets would not line up
		line = lower
	}
	cut := len(line)
	for _, m := range roleMarkers {
		if i := strings.Index(lower, m); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(line[:cut])
}
