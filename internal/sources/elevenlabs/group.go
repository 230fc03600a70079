package elevenlabs

import (
	"strings"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/sources"
)

// GroupVoices builds the voices dataset, language to accent to voice IDs.
// Missing languages or accents become "any". Order follows first appearance
// and each ID is listed once per accent.
func GroupVoices(voices []sources.Voice) *dataset.Dataset[[]string] {
	ds := dataset.New[[]string]()
	seen := make(map[string]bool, len(voices))

	for _, v := range voices {
		if v.VoiceID == "" {
			continue
		}
		lang := orAny(v.Language)
		accent := orAny(v.Accent)

		id := lang + "\x00" + accent + "\x00" + v.VoiceID
		if seen[id] {
			continue
		}
		seen[id] = true

		ids, _ := ds.Get(lang, accent)
		ds.Set(lang, accent, append(ids, v.VoiceID))
	}
	return ds
}

func orAny(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return constants.AnyVariant
	}
	return s
}
