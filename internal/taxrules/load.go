package taxrules

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFiscalYear - финансовый год встроенных правил
const DefaultFiscalYear = "FY 2026-27"

//go:embed data/fy2026-27.yaml
var defaultRulesYAML []byte

// Parse разбирает правила из YAML и проверяет их
func Parse(data []byte) (*Rules, error) {
	var r Rules
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("taxrules: decode: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadFile читает правила из YAML-файла
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxrules: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default возвращает встроенные правила FY 2026-27
func Default() *Rules {
	r, err := Parse(defaultRulesYAML)
	if err != nil {
		// встроенный файл проверяется тестами
		panic(err)
	}
	return r
}
