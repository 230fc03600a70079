package transform

import (
	"bytes"
	"encoding/json"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agentstation/langgarden/pkg/errors"
)

// StripKeys removes every object member named key, at any depth, from a JSON
// document. Member order is preserved. It returns the rewritten document and
// the number of members removed.
func StripKeys(data []byte, key string) (json.RawMessage, int, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, 0, errors.NewValidationError("input", nil, "empty document")
	}
	var removed int
	out, err := strip(data, key, &removed)
	if err != nil {
		return nil, 0, errors.WrapParse("json", "", err)
	}
	return out, removed, nil
}

func strip(raw json.RawMessage, key string, removed *int) (json.RawMessage, error) {
	switch raw[0] {
	case '{':
		return stripObject(raw, key, removed)
	case '[':
		return stripArray(raw, key, removed)
	default:
		if !json.Valid(raw) {
			return nil, errors.New("invalid JSON value")
		}
		return raw, nil
	}
}

func stripObject(raw json.RawMessage, key string, removed *int) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	obj := orderedmap.New[string, json.RawMessage]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if name == key {
			*removed++
			continue
		}
		value, err = strip(value, key, removed)
		if err != nil {
			return nil, err
		}
		obj.Set(name, value)
	}
	if err := closing(dec); err != nil {
		return nil, err
	}
	if obj.Len() == 0 {
		return json.RawMessage("{}"), nil
	}
	return obj.MarshalJSON()
}

func stripArray(raw json.RawMessage, key string, removed *int) (json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	for i, item := range items {
		out, err := strip(item, key, removed)
		if err != nil {
			return nil, err
		}
		items[i] = out
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return json.Marshal(items)
}

// closing consumes the final delimiter and rejects trailing data.
func closing(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after object")
	}
	return nil
}
