// Package dataset provides the two-level keyed datasets (language → variant → value)
// that every pipeline stage reads and writes. Datasets remember key order so a
// dataset decoded from disk iterates, and re-encodes, in the order it was written.
package dataset

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agentstation/langgarden/pkg/languages"
)

// Dataset is an ordered mapping of language code to variant code to T.
// The zero value is not usable; create datasets with New or by decoding JSON.
type Dataset[T any] struct {
	langs *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, T]]
}

// New creates an empty dataset.
func New[T any]() *Dataset[T] {
	return &Dataset[T]{langs: orderedmap.New[string, *orderedmap.OrderedMap[string, T]]()}
}

func (d *Dataset[T]) init() {
	if d.langs == nil {
		d.langs = orderedmap.New[string, *orderedmap.OrderedMap[string, T]]()
	}
}

// Set stores v under (language, variant). New languages and variants are appended
// after existing ones; existing keys keep their position.
func (d *Dataset[T]) Set(language, variant string, v T) {
	d.init()
	vs, ok := d.langs.Get(language)
	if !ok || vs == nil {
		vs = orderedmap.New[string, T]()
		d.langs.Set(language, vs)
	}
	vs.Set(variant, v)
}

// SetKey is Set for a VariantKey.
func (d *Dataset[T]) SetKey(key languages.VariantKey, v T) {
	d.Set(key.Language, key.Variant, v)
}

// Get returns the value stored under (language, variant).
func (d *Dataset[T]) Get(language, variant string) (T, bool) {
	var zero T
	if d == nil || d.langs == nil {
		return zero, false
	}
	vs, ok := d.langs.Get(language)
	if !ok || vs == nil {
		return zero, false
	}
	return vs.Get(variant)
}

// GetKey is Get for a VariantKey.
func (d *Dataset[T]) GetKey(key languages.VariantKey) (T, bool) {
	return d.Get(key.Language, key.Variant)
}

// Has reports whether (language, variant) is present.
func (d *Dataset[T]) Has(language, variant string) bool {
	_, ok := d.Get(language, variant)
	return ok
}

// HasLanguage reports whether the language key is present, even with no variants.
func (d *Dataset[T]) HasLanguage(language string) bool {
	if d == nil || d.langs == nil {
		return false
	}
	_, ok := d.langs.Get(language)
	return ok
}

// Delete removes (language, variant) and drops the language if it becomes empty.
func (d *Dataset[T]) Delete(language, variant string) {
	if d == nil || d.langs == nil {
		return
	}
	vs, ok := d.langs.Get(language)
	if !ok {
		return
	}
	if vs != nil {
		vs.Delete(variant)
	}
	if vs == nil || vs.Len() == 0 {
		d.langs.Delete(language)
	}
}

// Languages returns the language codes in order.
func (d *Dataset[T]) Languages() []string {
	if d == nil || d.langs == nil {
		return nil
	}
	out := make([]string, 0, d.langs.Len())
	for pair := d.langs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Variants returns the variant codes of a language in order.
func (d *Dataset[T]) Variants(language string) []string {
	if d == nil || d.langs == nil {
		return nil
	}
	vs, ok := d.langs.Get(language)
	if !ok || vs == nil {
		return nil
	}
	out := make([]string, 0, vs.Len())
	for pair := vs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of languages.
func (d *Dataset[T]) Len() int {
	if d == nil || d.langs == nil {
		return 0
	}
	return d.langs.Len()
}

// VariantCount returns the number of (language, variant) entries.
func (d *Dataset[T]) VariantCount() int {
	n := 0
	d.Each(func(languages.VariantKey, T) bool {
		n++
		return true
	})
	return n
}

// Each calls fn for every entry in order until fn returns false.
func (d *Dataset[T]) Each(fn func(key languages.VariantKey, v T) bool) {
	if d == nil || d.langs == nil {
		return
	}
	for lp := d.langs.Oldest(); lp != nil; lp = lp.Next() {
		if lp.Value == nil {
			continue
		}
		for vp := lp.Value.Oldest(); vp != nil; vp = vp.Next() {
			if !fn(languages.NewVariantKey(lp.Key, vp.Key), vp.Value) {
				return
			}
		}
	}
}

// Keys returns every VariantKey in order.
func (d *Dataset[T]) Keys() []languages.VariantKey {
	var keys []languages.VariantKey
	d.Each(func(k languages.VariantKey, _ T) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// MarshalJSON encodes the dataset as a nested JSON object in key order.
// Keys and leaves are written without HTML escaping, so a name such as
// "Tok Pisin & <Pidgin>" is stored as written.
func (d *Dataset[T]) MarshalJSON() ([]byte, error) {
	if d == nil || d.langs == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for lp := d.langs.Oldest(); lp != nil; lp = lp.Next() {
		if lp != d.langs.Oldest() {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, lp.Key); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		if lp.Value != nil {
			for vp := lp.Value.Oldest(); vp != nil; vp = vp.Next() {
				if vp != lp.Value.Oldest() {
					buf.WriteByte(',')
				}
				if err := writeMember(&buf, vp.Key); err != nil {
					return nil, err
				}
				if err := writeValue(&buf, vp.Value); err != nil {
					return nil, err
				}
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string) error {
	if err := writeValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return nil
}

// writeValue appends v as compact JSON without HTML escaping.
func writeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// UnmarshalJSON decodes a nested JSON object, keeping key order.
func (d *Dataset[T]) UnmarshalJSON(data []byte) error {
	langs := orderedmap.New[string, *orderedmap.OrderedMap[string, T]]()
	if err := json.Unmarshal(data, langs); err != nil {
		return err
	}
	d.langs = langs
	return nil
}

// MarshalYAML encodes the dataset as nested mappings for YAML output.
func (d *Dataset[T]) MarshalYAML() (any, error) {
	return toMapSlice(d), nil
}
