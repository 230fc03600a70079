package languages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// SpeakerCount is a leaf of the speakers dataset. It decodes either a bare
// number or an object of the form {"speakers": N}.
type SpeakerCount int64

// UnmarshalJSON accepts both speaker dataset layouts.
func (s *SpeakerCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Speakers *float64 `json:"speakers"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Speakers == nil {
			*s = 0
			return nil
		}
		return s.set(*obj.Speakers)
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("speaker count: %w", err)
	}
	return s.set(n)
}

func (s *SpeakerCount) set(n float64) error {
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("speaker count %v out of range", n)
	}
	*s = SpeakerCount(math.Floor(n))
	return nil
}
