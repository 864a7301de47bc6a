package parser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"schemaforge/internal/schema"
)

// Source: схема, прочитанная из файла.
type Source struct {
	Path   string
	Format Format
	Schema schema.Schema
}

// FormatForPath выбирает формат по расширению; "": файл не поддерживается.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".ts":
		return FormatAuto // interface или mongoose-модель
	}
	return ""
}

// LoadFile читает и разбирает один файл. format=FormatAuto: по расширению/содержимому.
func LoadFile(path string, format Format) (Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Source{}, err
	}
	if format == FormatAuto || format == "" {
		if f := FormatForPath(path); f != "" {
			format = f
		}
	}
	s, used, err := Parse(string(b), format)
	if err != nil {
		return Source{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return Source{Path: path, Format: used, Schema: s}, nil
}

// LoadDir обходит каталог и разбирает все поддерживаемые файлы.
// Одинаковое имя схемы в двух файлах: ошибка.
func LoadDir(root string) ([]Source, error) {
	var out []Source
	byName := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || FormatForPath(d.Name()) == "" {
			return nil
		}
		src, err := LoadFile(path, FormatAuto)
		if err != nil {
			return err
		}
		if prev, exists := byName[src.Schema.Name]; exists {
			return fmt.Errorf("duplicate schema %q (files: %s, %s)", src.Schema.Name, prev, path)
		}
		byName[src.Schema.Name] = path
		out = append(out, src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
