// Package extract pulls native-speaker counts and UNESCO endangerment status out
// of loosely structured page text using ordered pattern rules.
//
// Rules are evaluated in priority order and the first rule that yields a usable
// value wins. A rule whose numeral or phrase cannot be normalized does not end
// the search; the next rule is tried.
package extract

import (
	"github.com/agentstation/langgarden/pkg/languages"
)

// Extractor applies speaker and status rules to page text.
// The zero value uses the default rules.
type Extractor struct {
	SpeakerRules []SpeakerRule
	StatusRules  []StatusRule
}

// New returns an extractor with the default rule sets.
func New() *Extractor {
	return &Extractor{
		SpeakerRules: DefaultSpeakerRules(),
		StatusRules:  DefaultStatusRules(),
	}
}

// Trace records which rules produced a result. Empty rule names mean the
// fact was not found.
type Trace struct {
	SpeakerRule string
	StatusRule  string
	Result      languages.ExtractionResult
}

// Speakers returns the native-speaker count, if any rule finds one.
func (e *Extractor) Speakers(text string) (int64, bool) {
	n, rule := e.speakers(text)
	return n, rule != ""
}

// Status returns the endangerment code, if any rule finds one.
func (e *Extractor) Status(text string) (languages.EndangermentCode, bool) {
	code, rule := e.status(text)
	return code, rule != ""
}

// Extract runs both fact searches.
func (e *Extractor) Extract(text string) languages.ExtractionResult {
	return e.Trace(text).Result
}

// Trace runs both fact searches and reports the rules that fired.
func (e *Extractor) Trace(text string) Trace {
	var t Trace
	if n, rule := e.speakers(text); rule != "" {
		t.SpeakerRule = rule
		t.Result.Speakers = &n
	}
	if code, rule := e.status(text); rule != "" {
		t.StatusRule = rule
		t.Result.Status = &code
	}
	return t
}

func (e *Extractor) speakers(text string) (int64, string) {
	rules := e.SpeakerRules
	if rules == nil {
		rules = defaultSpeakerRules
	}
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		var scaleWord string
		if len(m) > 2 {
			scaleWord = m[2]
		}
		if n, ok := Normalize(m[1], scaleWord); ok {
			return n, r.Name
		}
	}
	return 0, ""
}

func (e *Extractor) status(text string) (languages.EndangermentCode, string) {
	rules := e.StatusRules
	if rules == nil {
		rules = defaultStatusRules
	}
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if code, ok := classifyCapture(m[1]); ok {
			return code, r.Name
		}
	}
	return "", ""
}

var (
	defaultSpeakerRules = DefaultSpeakerRules()
	defaultStatusRules  = DefaultStatusRules()
)
