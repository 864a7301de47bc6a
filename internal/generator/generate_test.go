package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/schema"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want Family
	}{
		{"", FamilyDocument},
		{"document", FamilyDocument},
		{"NoSQL", FamilyDocument},
		{"mongoose", FamilyDocument},
		{"relational", FamilyRelational},
		{" sql ", FamilyRelational},
		{"postgres", FamilyRelational},
	}
	for _, tt := range tests {
		got, err := ParseFamily(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFamily("graph")
	assert.Error(t, err)
}

func TestGenerate_FamilySelectsModel(t *testing.T) {
	s := userSchema()

	doc := GenerateCode(s, FamilyDocument, true)
	assert.Contains(t, doc.Model, "new Schema<UserDocument>")
	assert.Equal(t, Validator(s, true), doc.Validator)
	assert.Equal(t, Interface(s), doc.Interface)

	rel := GenerateCode(s, FamilyRelational, false)
	assert.Contains(t, rel.Model, "CREATE TABLE users")
	assert.Equal(t, Validator(s, false), rel.Validator)

	// неизвестное семейство не ошибка
	other := GenerateCode(s, Family("graph"), true)
	assert.Equal(t, doc, other)
}

func TestGenerate_Pluralize(t *testing.T) {
	s := schema.Schema{Name: "Person", Fields: []schema.Field{{Name: "name", Type: schema.String(), Required: true}}}
	code := Generate(s, Options{Family: FamilyRelational, Pluralize: true})
	assert.Contains(t, code.Model, "CREATE TABLE people (")
}

func TestGenerate_Deterministic(t *testing.T) {
	s := nestedSchema()
	s.Fields = append(s.Fields,
		schema.Field{Name: "tags", Type: schema.ArrayOf(schema.KindDate)},
		schema.Field{Name: "score", Type: schema.Number(), Unique: true, Validation: schema.Validation{Min: schema.Float(1)}},
	)
	for _, family := range []Family{FamilyDocument, FamilyRelational} {
		first := GenerateCode(s, family, true)
		second := GenerateCode(s, family, true)
		assert.Equal(t, first, second)
	}
}

func TestGenerate_DoesNotMutateSchema(t *testing.T) {
	s := nestedSchema()
	before := nestedSchema()
	_ = GenerateCode(s, FamilyRelational, true)
	_ = GenerateCode(s, FamilyDocument, true)
	assert.Equal(t, before, s)
}

func TestAnnotations_Order(t *testing.T) {
	f := schema.Field{Name: "x", Unique: true, Type: schema.Number(), Validation: schema.Validation{
		Default: schema.Str("3"), Max: schema.Float(9), Min: schema.Float(-1.5),
	}}
	assert.Equal(t, []string{"@unique", "@min -1.5", "@max 9", "@default 3"}, Annotations(f))
	assert.Empty(t, Annotations(schema.Field{Name: "y", Type: schema.String()}))
}
