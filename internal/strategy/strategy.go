// Package strategy holds the text-rewriting fix strategies and the registry
// that maps diagnostic categories to them.
package strategy

import (
	"github.com/kamilpajak/tsmend/pkg/models"
)

// Strategy is a pure transformation over one file's content. Apply receives
// the diagnostics reported for that file and returns the rewritten content
// together with the number of changes made. Strategies perform no I/O and no
// cross-file coordination; the checkpoint controller catches bad outcomes.
type Strategy interface {
	Name() string
	Categories() []string
	Apply(content string, diags []models.Diagnostic) (string, int)
}

// Registry maps category keys to strategies. The first strategy registered
// for a key wins.
type Registry struct {
	strategies []Strategy
	byCategory map[string]Strategy
}

// NewRegistry builds a registry from the given strategies.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{byCategory: make(map[string]Strategy)}
	for _, s := range strategies {
		r.strategies = append(r.strategies, s)
		for _, key := range s.Categories() {
			if _, exists := r.byCategory[key]; !exists {
				r.byCategory[key] = s
			}
		}
	}
	return r
}

// Default returns the registry with every built-in strategy.
func Default() *Registry {
	return NewRegistry(
		ImportSyntax{},
		MergeImports{},
		DropUnused{},
		AddImports{},
		CastListeners{},
	)
}

// For returns the strategy registered for a category key, if any.
func (r *Registry) For(key string) (Strategy, bool) {
	s, ok := r.byCategory[key]
	return s, ok
}

// Strategies returns all registered strategies in registration order.
func (r *Registry) Strategies() []Strategy {
	return r.strategies
}
