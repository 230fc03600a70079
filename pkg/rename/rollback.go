package rename

import (
	"path/filepath"

	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
)

// RollbackMap maps image stems keyed by ISO 639-3 code back to the two-letter
// language code used by the datasets: "cym_standard" → "cy_standard". Only
// records that carry an ISO 639-3 code contribute.
func RollbackMap(data *dataset.Dataset[languages.Record]) map[string]string {
	mapping := map[string]string{}
	data.Each(func(key languages.VariantKey, rec languages.Record) bool {
		if rec.ISO6393 == "" {
			return true
		}
		from := languages.NewVariantKey(rec.ISO6393, key.Variant).FileStem()
		mapping[from] = key.FileStem()
		return true
	})
	return mapping
}

// Rollback renames "<from>.png" to "<to>.png" in dir for every mapping entry.
// Existing targets are never overwritten.
func Rollback(dir string, mapping map[string]string, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	names, err := images(dir, map[string]bool{".png": true})
	if err != nil {
		return nil, err
	}

	r := &Report{DryRun: o.dryRun}
	for _, name := range names {
		to, ok := mapping[stem(name)]
		if !ok {
			continue
		}
		o.move(r, filepath.Join(dir, name), filepath.Join(dir, to+".png"))
	}
	return r, nil
}
