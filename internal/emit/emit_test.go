package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/generator"
	"schemaforge/internal/schema"
)

func TestFiles(t *testing.T) {
	assert.Equal(t, [3]string{"user.validator.ts", "user.interface.ts", "user.model.ts"}, Files("User", generator.FamilyDocument))
	assert.Equal(t, [3]string{"order.validator.ts", "order.interface.ts", "order.sql"}, Files("Order", generator.FamilyRelational))
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	s := schema.Schema{Name: "User", Fields: []schema.Field{{Name: "email", Type: schema.String(), Required: true}}}
	code := generator.GenerateCode(s, generator.FamilyRelational, true)

	written, err := Write(dir, s.Name, generator.FamilyRelational, code)
	require.NoError(t, err)
	require.Len(t, written, 3)

	for i, body := range []string{code.Validator, code.Interface, code.Model} {
		b, err := os.ReadFile(written[i])
		require.NoError(t, err)
		assert.Equal(t, body+"\n", string(b))
	}
	assert.Equal(t, filepath.Join(dir, "user.sql"), written[2])
}

func TestWrite_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := Write(filepath.Join(file, "sub"), "X", generator.FamilyDocument, schema.GeneratedCode{})
	assert.Error(t, err)
}

func TestWrite_RejectsPathInName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")

	for _, name := range []string{"../../x", "a/b", `a\b`, "..", ""} {
		_, err := Write(dir, name, generator.FamilyDocument, schema.GeneratedCode{})
		assert.Error(t, err, name)
	}
	_, err := os.Stat(filepath.Join(root, "x.validator.ts"))
	assert.True(t, os.IsNotExist(err))
}
