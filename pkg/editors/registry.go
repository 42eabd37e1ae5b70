package editors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-relationfield/pkg/relation"
	"github.com/goliatone/go-relationfield/pkg/schema"
	"github.com/goliatone/go-relationfield/pkg/widget"
)

// EditorRelationSelect is the built-in relation editor identifier.
const EditorRelationSelect = "relation-select"

// Matcher decides whether an editor should handle the supplied field.
type Matcher func(field schema.Field) bool

// Factory constructs the editor for a matched field.
type Factory func(field schema.Field) (widget.Editor, error)

type rule struct {
	name     string
	priority int
	match    Matcher
	build    Factory
	order    int
}

// Registry dispatches fields to editor implementations through prioritized
// matchers. Higher priority wins; ties fall back to registration order.
// Registration is idempotent: re-registering a name replaces the previous
// entry and has no side effect beyond the registry itself.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in relation matcher
// registered: schema type "relation" with the searchable-dropdown format
// resolves to the relation editor.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.Register(EditorRelationSelect, 90, func(field schema.Field) bool {
		return field.IsRelation() && field.Format == schema.FormatSearchableDropdown
	}, func(field schema.Field) (widget.Editor, error) {
		return relation.NewForField(field), nil
	})
	return reg
}

// Register adds or replaces an editor rule under the given name.
func (r *Registry) Register(name string, priority int, match Matcher, build Factory) {
	if r == nil || match == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.rules {
		if r.rules[idx].name == trimmed {
			r.rules[idx].priority = priority
			r.rules[idx].match = match
			r.rules[idx].build = build
			return
		}
	}
	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    match,
		build:    build,
		order:    len(r.rules),
	})
}

// Resolve returns the name and factory of the highest-priority rule matching
// the field.
func (r *Registry) Resolve(field schema.Field) (string, Factory, bool) {
	if r == nil {
		return "", nil, false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", nil, false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, entry.build, true
		}
	}
	return "", nil, false
}

// Build constructs the editor for a field. Fields no rule claims get the
// base select widget.
func (r *Registry) Build(field schema.Field) (widget.Editor, error) {
	name, build, ok := r.Resolve(field)
	if !ok {
		return widget.NewSelect(field), nil
	}
	editor, err := build(field)
	if err != nil {
		return nil, fmt.Errorf("editors: build %q for field %q: %w", name, field.Name, err)
	}
	return editor, nil
}
