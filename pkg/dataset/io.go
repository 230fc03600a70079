package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
)

// LoadJSON reads a JSON dataset file.
func LoadJSON[T any](path string) (*Dataset[T], error) {
	data, err := os.ReadFile(path) //nolint:gosec // dataset paths come from the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "dataset", ID: path}
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return Decode[T](data, path)
}

// LoadFile decodes a JSON file of any shape into v.
func LoadFile(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		if os.IsNotExist(err) {
			return &errors.NotFoundError{Resource: "file", ID: path}
		}
		return errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}

// Decode parses a JSON dataset. name is only used in error messages.
func Decode[T any](data []byte, name string) (*Dataset[T], error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New[T](), nil
	}
	ds := New[T]()
	if err := json.Unmarshal(data, ds); err != nil {
		return nil, errors.WrapParse("json", name, err)
	}
	return ds, nil
}

// LoadOptional is LoadJSON that returns (nil, nil) when the file does not exist.
func LoadOptional[T any](path string) (*Dataset[T], error) {
	ds, err := LoadJSON[T](path)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return ds, err
}

// Save writes v to path, choosing YAML for .yaml/.yml and JSON otherwise.
// Parent directories are created as needed.
func Save(path string, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SaveYAML(path, v)
	default:
		return SaveJSON(path, v)
	}
}

// EncodeJSON renders v as two-space indented JSON with a trailing newline.
// HTML characters are not escaped so names stay readable.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveJSON writes v as indented JSON.
func SaveJSON(path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return errors.WrapResource("encode", "dataset", path, err)
	}
	return writeFile(path, data)
}

// EncodeYAML renders v as YAML.
func EncodeYAML(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
}

// SaveYAML writes v as YAML.
func SaveYAML(path string, v any) error {
	data, err := EncodeYAML(v)
	if err != nil {
		return errors.WrapResource("encode", "dataset", path, err)
	}
	return writeFile(path, data)
}

// writeFile writes through a temp file in the same directory so readers never
// see a half-written dataset.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// toMapSlice converts a dataset into goccy/go-yaml ordered mappings.
func toMapSlice[T any](d *Dataset[T]) yaml.MapSlice {
	out := yaml.MapSlice{}
	for _, lang := range d.Languages() {
		inner := yaml.MapSlice{}
		for _, variant := range d.Variants(lang) {
			v, _ := d.Get(lang, variant)
			inner = append(inner, yaml.MapItem{Key: variant, Value: v})
		}
		out = append(out, yaml.MapItem{Key: lang, Value: inner})
	}
	return out
}
