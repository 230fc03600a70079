package extract

import "regexp"

const (
	number = `(\d{1,3}(?:[,.\s]\d{3})*(?:\.\d+)?)`
	scale  = `(million|thousand|billion)`
	phrase = `(extinct|critically\s+endangered|severely\s+endangered|definitely\s+endangered|vulnerable|safe)`
)

// SpeakerRule locates a speaker count. Group 1 captures the numeral and the
// optional group 2 captures a scale word.
type SpeakerRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// StatusRule locates an endangerment classification. Group 1 captures either a
// two-letter code or a phrase.
type StatusRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultSpeakerRules returns the speaker rules in priority order. Labeled,
// scale-qualified matches come first and bare numbers inside a tag come last.
func DefaultSpeakerRules() []SpeakerRule {
	return []SpeakerRule{
		{"native-label-scaled", regexp.MustCompile(`(?is)Native speakers[^0-9]*?` + number + `\s*` + scale)},
		{"native-label", regexp.MustCompile(`(?is)Native speakers[^0-9]*?` + number)},
		{"scaled-native-suffix", regexp.MustCompile(`(?is)` + number + `\s*` + scale + `[^.]*?native speakers`)},
		{"native-suffix", regexp.MustCompile(`(?is)` + number + `[^.]*?native speakers`)},
		{"speakers-label-scaled", regexp.MustCompile(`(?is)speakers[^0-9]*?` + number + `\s*` + scale)},
		{"speakers-label", regexp.MustCompile(`(?is)speakers[^0-9]*?` + number)},
		{"tag-scaled", regexp.MustCompile(`(?is)>` + number + `\s*` + scale + `[^<]*?(?:native|speakers)`)},
		{"tag", regexp.MustCompile(`(?is)>` + number + `[^<]*?(?:native|speakers)`)},
	}
}

// DefaultStatusRules returns the endangerment rules in priority order.
func DefaultStatusRules() []StatusRule {
	return []StatusRule{
		{"atlas-classified", regexp.MustCompile(`(?is)UNESCO.*?Atlas.*?(?:classified|lists?).*?as\s+([^.]+)`)},
		{"classified-by-unesco", regexp.MustCompile(`(?is)classified\s+as\s+([^.]+).*?by.*?UNESCO`)},
		// The code itself must be upper case; "se" or "de" in running text is noise.
		{"unesco-code", regexp.MustCompile(`(?is)UNESCO.*?(?-i:\b(EX|CR|SE|DE|VU|NE)\b)`)},
		{"phrase-before-unesco", regexp.MustCompile(`(?is)` + phrase + `.*?UNESCO`)},
		{"phrase-after-unesco", regexp.MustCompile(`(?is)UNESCO.*?` + phrase)},
	}
}
