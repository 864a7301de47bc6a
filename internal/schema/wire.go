package schema

import (
	"github.com/goccy/go-json"
)

// fieldWire хранит Field в плоском виде документов: type + arrayType + objectFields.
type fieldWire struct {
	Name         string          `json:"name" yaml:"name"`
	Type         string          `json:"type" yaml:"type"`
	Required     bool            `json:"required" yaml:"required"`
	Unique       bool            `json:"unique,omitempty" yaml:"unique,omitempty"`
	Validation   *validationWire `json:"validation,omitempty" yaml:"validation,omitempty"`
	ArrayType    string          `json:"arrayType,omitempty" yaml:"arrayType,omitempty"`
	ObjectFields []Field         `json:"objectFields,omitempty" yaml:"objectFields,omitempty"`
}

type validationWire struct {
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Regex   string   `json:"regex,omitempty" yaml:"regex,omitempty"`
	Default *string  `json:"default,omitempty" yaml:"default,omitempty"`
}

type schemaWire struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

func (f Field) wire() fieldWire {
	w := fieldWire{
		Name:     f.Name,
		Type:     string(f.Kind()),
		Required: f.Required,
		Unique:   f.Unique,
	}
	switch t := f.Type.(type) {
	case Array:
		w.ArrayType = string(t.Elem)
	case Object:
		w.ObjectFields = t.Fields
	}
	if !f.Validation.IsZero() {
		w.Validation = &validationWire{
			Min:     f.Validation.Min,
			Max:     f.Validation.Max,
			Regex:   f.Validation.Regex,
			Default: f.Validation.Default,
		}
	}
	return w
}

func (w fieldWire) field() Field {
	f := Field{
		Name:     w.Name,
		Required: w.Required,
		Unique:   w.Unique,
	}
	switch Kind(w.Type) {
	case KindArray:
		f.Type = Array{Elem: Kind(w.ArrayType)}
	case KindObject:
		f.Type = ObjectOf(w.ObjectFields...)
	default:
		f.Type = Primitive{Of: Kind(w.Type)}
	}
	if w.Validation != nil {
		f.Validation = Validation{
			Min:     w.Validation.Min,
			Max:     w.Validation.Max,
			Regex:   w.Validation.Regex,
			Default: w.Validation.Default,
		}
	}
	return f
}

// MarshalJSON пишет поле в плоском виде {name,type,required,...}.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.wire())
}

// UnmarshalJSON читает плоский вид без проверки инвариантов: строгий разбор делает parser.
func (f *Field) UnmarshalJSON(b []byte) error {
	var w fieldWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*f = w.field()
	return nil
}

func (f Field) MarshalYAML() (interface{}, error) {
	return f.wire(), nil
}

func (s Schema) wire() schemaWire {
	fields := s.Fields
	if fields == nil {
		fields = []Field{}
	}
	return schemaWire{Name: s.Name, Fields: fields}
}

// MarshalJSON всегда пишет fields массивом, даже пустым.
func (s Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	var w schemaWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.Name, s.Fields = w.Name, w.Fields
	return nil
}

func (s Schema) MarshalYAML() (interface{}, error) {
	return s.wire(), nil
}
