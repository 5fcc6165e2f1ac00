package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed combos/*.yaml
var CombosFS embed.FS

// ComboDir is checked before the embedded files so edited combos are picked up
// without a rebuild.
var ComboDir = filepath.Join("config", "combos")

// LoadCombo reads a combo file by name ("player" or "player.yaml").
func LoadCombo(name string) ([]byte, error) {
	clean := cleanComboPath(name)
	if data, err := os.ReadFile(filepath.Join(ComboDir, clean)); err == nil {
		return data, nil
	}
	return CombosFS.ReadFile("combos/" + clean)
}

// ParseComboGraph decodes and compiles a combo graph.
func ParseComboGraph(data []byte) (*ComboGraph, error) {
	var g ComboGraph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("combos: unmarshal: %w", err)
	}
	if err := g.Compile(); err != nil {
		return nil, fmt.Errorf("combos: %w", err)
	}
	return &g, nil
}

// LoadComboGraph loads and compiles the named combo graph.
func LoadComboGraph(name string) (*ComboGraph, error) {
	data, err := LoadCombo(name)
	if err != nil {
		return nil, fmt.Errorf("combos: load %s: %w", name, err)
	}
	g, err := ParseComboGraph(data)
	if err != nil {
		return nil, fmt.Errorf("combos: %s: %w", name, err)
	}
	if g.Name == "" {
		g.Name = ComboName(name)
	}
	return g, nil
}

// ComboName strips directories and the extension from a combo file path.
func ComboName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

func cleanComboPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "config/combos/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "combos/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".yaml") && !strings.HasSuffix(s, ".yml") {
		s += ".yaml"
	}
	return s
}
