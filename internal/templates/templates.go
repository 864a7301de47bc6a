package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var embedded embed.FS

// Template описывает один пример исходного текста для редактора
type Template struct {
	Name    string `yaml:"name" json:"name"`
	Title   string `yaml:"title" json:"title"`
	Format  string `yaml:"format" json:"format"`
	Content string `yaml:"content" json:"content"`
}

// Catalog: шаблоны по имени
type Catalog map[string]Template

// LoadCatalog читает все *.yaml/*.yml из каталога fsys.
func LoadCatalog(fsys fs.FS, dir string) (Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	result := make(Catalog)
	for _, e := range entries {
		if e.IsDir() || !(strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("template %s: %w", e.Name(), err)
		}
		// имя шаблона: из поля name или из имени файла
		if t.Name == "" {
			t.Name = strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		}
		if _, dup := result[t.Name]; dup {
			return nil, fmt.Errorf("duplicate template %q (file: %s)", t.Name, e.Name())
		}
		result[t.Name] = t
	}
	return result, nil
}

// Default: встроенный каталог.
func Default() (Catalog, error) {
	return LoadCatalog(embedded, "catalog")
}

// Lookup ищет шаблон: сначала точное имя, затем без учёта регистра.
func (c Catalog) Lookup(name string) (Template, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Template{}, false
	}
	if t, ok := c[name]; ok {
		return t, true
	}
	nl := strings.ToLower(name)
	for k, t := range c {
		if strings.ToLower(k) == nl {
			return t, true
		}
	}
	return Template{}, false
}

// List: шаблоны, отсортированные по имени.
func (c Catalog) List() []Template {
	out := make([]Template, 0, len(c))
	for _, t := range c {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
