package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"schemaforge/internal/generator"
	"schemaforge/internal/schema"
)

// Files возвращает имена файлов артефактов: validator, interface, model.
func Files(name string, family generator.Family) [3]string {
	base := strings.ToLower(name)
	model := base + ".model.ts"
	if family == generator.FamilyRelational {
		model = base + ".sql"
	}
	return [3]string{base + ".validator.ts", base + ".interface.ts", model}
}

// Write пишет три артефакта в dir и возвращает пути записанных файлов.
// Имя схемы не может выводить запись за пределы dir.
func Write(dir, name string, family generator.Family, code schema.GeneratedCode) ([]string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid schema name %q for output file", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	names := Files(name, family)
	bodies := [3]string{code.Validator, code.Interface, code.Model}

	written := make([]string, 0, len(names))
	for i, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte(bodies[i]+"\n"), 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", p, err)
		}
		written = append(written, p)
	}
	return written, nil
}
