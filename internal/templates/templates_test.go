package templates

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/parser"
)

func TestDefault_AllTemplatesParse(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)
	require.Len(t, catalog, 4)

	for _, tpl := range catalog.List() {
		t.Run(tpl.Name, func(t *testing.T) {
			format, err := parser.ParseFormat(tpl.Format)
			require.NoError(t, err)

			s, used, err := parser.Parse(tpl.Content, format)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Name)
			assert.NotEmpty(t, s.Fields)
			// автоопределение совпадает с объявленным форматом
			_, detected, err := parser.Parse(tpl.Content, parser.FormatAuto)
			require.NoError(t, err)
			assert.Equal(t, used, detected)
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	tpl, ok := catalog.Lookup("User-Interface")
	require.True(t, ok)
	assert.Equal(t, "user-interface", tpl.Name)
	assert.Equal(t, "TypeScript Interface", tpl.Title)

	_, ok = catalog.Lookup("")
	assert.False(t, ok)
	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)
}

func TestCatalog_ListSorted(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	var names []string
	for _, tpl := range catalog.List() {
		names = append(names, tpl.Name)
	}
	assert.Equal(t, []string{"product-yaml", "user-document-model", "user-interface", "user-structured"}, names)
}

func TestLoadCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"t/a.yaml":    {Data: []byte("title: A\nformat: json\ncontent: '{}'\n")},
		"t/b.yml":     {Data: []byte("name: bee\ntitle: B\n")},
		"t/notes.txt": {Data: []byte("ignored")},
	}
	catalog, err := LoadCatalog(fsys, "t")
	require.NoError(t, err)

	assert.Len(t, catalog, 2)
	assert.Equal(t, "A", catalog["a"].Title)
	assert.Equal(t, "B", catalog["bee"].Title)
}

func TestLoadCatalog_Errors(t *testing.T) {
	dup := fstest.MapFS{
		"t/a.yaml": {Data: []byte("name: same\n")},
		"t/b.yaml": {Data: []byte("name: same\n")},
	}
	_, err := LoadCatalog(dup, "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate template "same"`)

	broken := fstest.MapFS{"t/a.yaml": {Data: []byte("name: [")}}
	_, err = LoadCatalog(broken, "t")
	assert.Error(t, err)

	_, err = LoadCatalog(fstest.MapFS{}, "missing")
	assert.Error(t, err)
}
