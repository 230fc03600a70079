package languages

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EndangermentCode is a UNESCO language vitality classification.
type EndangermentCode string

// The closed set of endangerment codes.
const (
	Extinct              EndangermentCode = "EX"
	CriticallyEndangered EndangermentCode = "CR"
	SeverelyEndangered   EndangermentCode = "SE"
	DefinitelyEndangered EndangermentCode = "DE"
	Vulnerable           EndangermentCode = "VU"
	NotEndangered        EndangermentCode = "NE"
)

// EndangermentCodes lists every code from most to least endangered.
var EndangermentCodes = []EndangermentCode{
	Extinct,
	CriticallyEndangered,
	SeverelyEndangered,
	DefinitelyEndangered,
	Vulnerable,
	NotEndangered,
}

var endangermentDescriptions = map[EndangermentCode]string{
	Extinct:              "extinct",
	CriticallyEndangered: "critically endangered",
	SeverelyEndangered:   "severely endangered",
	DefinitelyEndangered: "definitely endangered",
	Vulnerable:           "vulnerable",
	NotEndangered:        "safe",
}

// ParseEndangermentCode accepts only the six two-letter codes, in any case.
func ParseEndangermentCode(s string) (EndangermentCode, bool) {
	code := EndangermentCode(strings.ToUpper(strings.TrimSpace(s)))
	if code.Valid() {
		return code, true
	}
	return "", false
}

// Valid reports whether c is one of the six codes.
func (c EndangermentCode) Valid() bool {
	_, ok := endangermentDescriptions[c]
	return ok
}

// Description returns the UNESCO phrase for the code, e.g. "severely endangered".
func (c EndangermentCode) Description() string {
	return endangermentDescriptions[c]
}

// String implements fmt.Stringer.
func (c EndangermentCode) String() string {
	return string(c)
}

// UnmarshalJSON rejects anything outside the closed set so bad status files fail loudly.
func (c *EndangermentCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*c = ""
		return nil
	}
	code, ok := ParseEndangermentCode(s)
	if !ok {
		return fmt.Errorf("unknown endangerment code %q", s)
	}
	*c = code
	return nil
}
