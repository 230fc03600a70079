package languages

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/agentstation/langgarden/pkg/constants"
)

// Coordinates is a latitude/longitude pair as stored in the coordinates dataset.
type Coordinates struct {
	Lat  Coordinate `json:"lat"`
	Long Coordinate `json:"long"`
}

// PlaceholderCoordinates returns the sentinel pair written for coordinates not yet filled in.
func PlaceholderCoordinates() Coordinates {
	p := NewPlaceholder()
	return Coordinates{Lat: p, Long: p}
}

// Valid reports whether both components are numeric and in range.
func (c Coordinates) Valid() bool {
	lat, ok := c.Lat.Float()
	if !ok || lat < -90 || lat > 90 {
		return false
	}
	long, ok := c.Long.Float()
	return ok && long >= -180 && long <= 180
}

// Coordinate keeps a single coordinate exactly as it appeared in the input,
// which may be a JSON number or a placeholder string such as "TODO".
type Coordinate struct {
	raw json.RawMessage
}

// NewCoordinate creates a numeric coordinate.
func NewCoordinate(v float64) Coordinate {
	return Coordinate{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// NewPlaceholder creates the "TODO" sentinel coordinate.
func NewPlaceholder() Coordinate {
	raw, _ := json.Marshal(constants.PlaceholderCoordinate)
	return Coordinate{raw: raw}
}

// Float returns the numeric value. Only JSON numbers qualify.
func (c Coordinate) Float() (float64, bool) {
	if len(c.raw) == 0 || c.raw[0] == '"' || bytes.Equal(c.raw, []byte("null")) {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(c.raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsPlaceholder reports whether the coordinate is missing or a non-numeric string.
func (c Coordinate) IsPlaceholder() bool {
	_, ok := c.Float()
	return !ok
}

// String returns the raw value without JSON quoting.
func (c Coordinate) String() string {
	var s string
	if err := json.Unmarshal(c.raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(c.raw))
}

// MarshalJSON writes the value back verbatim.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if len(c.raw) == 0 {
		return []byte("null"), nil
	}
	return c.raw, nil
}

// UnmarshalJSON stores the raw value.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	c.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// MarshalYAML writes numbers as numbers and placeholders as strings.
func (c Coordinate) MarshalYAML() (any, error) {
	if len(c.raw) == 0 {
		return nil, nil
	}
	if v, ok := c.Float(); ok {
		return v, nil
	}
	return c.String(), nil
}
