package factory

import (
	"log"

	cfg "github.com/automoto/bladelock/config"
)

// graphs caches compiled combo graphs by name so actors of one type share a
// graph and a reload swaps it for all of them.
var graphs = map[string]*cfg.ComboGraph{}

// ComboGraph returns the named graph, loading it on first use. It returns
// nil after logging when the graph cannot be loaded.
func ComboGraph(name string) *cfg.ComboGraph {
	if g, ok := graphs[name]; ok {
		return g
	}
	g, err := cfg.LoadComboGraph(name)
	if err != nil {
		log.Printf("Warning: Could not load combo graph %q: %v", name, err)
		graphs[name] = nil
		return nil
	}
	graphs[name] = g
	return g
}

// ReplaceComboGraph stores a reloaded graph for future spawns.
func ReplaceComboGraph(name string, g *cfg.ComboGraph) {
	graphs[name] = g
}

// ResetComboGraphs drops every cached graph.
func ResetComboGraphs() {
	graphs = map[string]*cfg.ComboGraph{}
}
