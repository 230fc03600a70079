package extract

import (
	"regexp"
	"strings"

	"github.com/agentstation/langgarden/pkg/languages"
)

var phrases = map[string]languages.EndangermentCode{
	"extinct":               languages.Extinct,
	"critically endangered": languages.CriticallyEndangered,
	"severely endangered":   languages.SeverelyEndangered,
	"definitely endangered": languages.DefinitelyEndangered,
	"vulnerable":            languages.Vulnerable,
	"safe":                  languages.NotEndangered,
}

// Classify maps a UNESCO vitality phrase to its code. The lookup is exact after
// lower-casing and trimming; anything else is unknown.
func Classify(phrase string) (languages.EndangermentCode, bool) {
	code, ok := phrases[strings.ToLower(strings.TrimSpace(phrase))]
	return code, ok
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	// Leftmost known phrase inside a longer capture. Alternation order puts the
	// two-word phrases first so "critically endangered" never reads as "extinct".
	knownPhrase = regexp.MustCompile(`(?i)\b(extinct|critically\s+endangered|severely\s+endangered|definitely\s+endangered|vulnerable|safe)\b`)
)

// classifyCapture resolves a status rule capture: a valid two-letter code is
// taken as is, an exact phrase is mapped, and a longer capture is searched
// for the leftmost whole phrase.
func classifyCapture(capture string) (languages.EndangermentCode, bool) {
	capture = strings.TrimSpace(whitespace.ReplaceAllString(capture, " "))
	if capture == "" {
		return "", false
	}
	if code, ok := languages.ParseEndangermentCode(capture); ok && len(capture) == 2 {
		return code, true
	}
	if code, ok := Classify(capture); ok {
		return code, true
	}
	if m := knownPhrase.FindString(capture); m != "" {
		return Classify(whitespace.ReplaceAllString(m, " "))
	}
	return "", false
}
