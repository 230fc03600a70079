package join

import (
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
)

// Source is one input of the join besides the driving voices dataset.
type Source interface {
	// Name identifies the source in diagnostics, e.g. "coordinates".
	Name() string
	// Required sources restrict membership. Optional ones only contribute fields.
	Required() bool
	// Has reports whether the source carries key.
	Has(key languages.VariantKey) bool
	// Apply copies the source's fields for key into rec. For optional sources
	// missing the key it writes the typed default instead.
	Apply(key languages.VariantKey, rec *languages.Record)
}

// DatasetSource adapts a Dataset into a Source.
type DatasetSource[T any] struct {
	name     string
	data     *dataset.Dataset[T]
	required bool
	apply    func(v T, rec *languages.Record)
	absent   func(rec *languages.Record)
}

// NewSource builds a required source from a dataset and a field copier.
func NewSource[T any](name string, data *dataset.Dataset[T], apply func(T, *languages.Record)) *DatasetSource[T] {
	return &DatasetSource[T]{name: name, data: data, required: true, apply: apply}
}

// WithDefault sets what an optional source writes for keys it lacks.
func (s *DatasetSource[T]) WithDefault(absent func(*languages.Record)) *DatasetSource[T] {
	c := *s
	c.absent = absent
	return &c
}

// Optional returns a copy that no longer restricts membership.
func (s *DatasetSource[T]) Optional() *DatasetSource[T] {
	c := *s
	c.required = false
	return &c
}

// Name implements Source.
func (s *DatasetSource[T]) Name() string { return s.name }

// Required implements Source.
func (s *DatasetSource[T]) Required() bool { return s.required }

// Has implements Source.
func (s *DatasetSource[T]) Has(key languages.VariantKey) bool {
	return s.data.Has(key.Language, key.Variant)
}

// Apply implements Source.
func (s *DatasetSource[T]) Apply(key languages.VariantKey, rec *languages.Record) {
	v, ok := s.data.GetKey(key)
	if !ok {
		if s.absent != nil {
			s.absent(rec)
		}
		return
	}
	if s.apply != nil {
		s.apply(v, rec)
	}
}

// Coordinates joins the coordinates dataset. Values are copied verbatim,
// placeholders included.
func Coordinates(data *dataset.Dataset[languages.CoordinateEntry]) *DatasetSource[languages.CoordinateEntry] {
	return NewSource("coordinates", data, func(v languages.CoordinateEntry, rec *languages.Record) {
		rec.Coordinates = v.Coordinates
	})
}

// Names joins the names dataset.
func Names(data *dataset.Dataset[languages.NameEntry]) *DatasetSource[languages.NameEntry] {
	return NewSource("names", data, func(v languages.NameEntry, rec *languages.Record) {
		rec.Name = v.Name
		rec.OfficialName = v.OfficialName
		rec.ISO6393 = v.ISO6393
	})
}

// Speakers joins the speakers dataset. When used optionally, keys without a
// count get 0; extraction itself never writes a default.
func Speakers(data *dataset.Dataset[languages.SpeakerCount]) *DatasetSource[languages.SpeakerCount] {
	return NewSource("speakers", data, func(v languages.SpeakerCount, rec *languages.Record) {
		n := int64(v)
		rec.Speakers = &n
	}).WithDefault(func(rec *languages.Record) {
		var zero int64
		rec.Speakers = &zero
	})
}

// Status joins the UNESCO status dataset. Missing statuses stay absent.
func Status(data *dataset.Dataset[languages.EndangermentCode]) *DatasetSource[languages.EndangermentCode] {
	return NewSource("unesco_status", data, func(v languages.EndangermentCode, rec *languages.Record) {
		rec.EndangermentStatus = v
	})
}
