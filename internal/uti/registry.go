// Package uti implements a hierarchical type registry in the style of
// Uniform Type Identifiers: declared types form a conformance DAG and map to
// filename extensions and glob patterns.
package uti

import (
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"

	apperrors "fileref/internal/errors"
)

// Declaration describes one type identifier.
type Declaration struct {
	Identifier  string   `json:"identifier" yaml:"identifier"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	ConformsTo  []string `json:"conformsTo,omitempty" yaml:"conformsTo,omitempty"`
	// Extensions are matched case-insensitively; the first one is preferred.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	// Patterns are doublestar globs matched against a file's base name.
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// Registry holds type declarations. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Declaration
	order []string            // declaration order, used for "first declared wins"
	byExt map[string][]string // folded extension -> identifiers in declaration order
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		types: make(map[string]Declaration),
		byExt: make(map[string][]string),
	}
}

// Declare adds d to the registry, replacing any previous declaration with the
// same identifier. Declarations that would make the conformance graph cyclic
// are rejected.
func (r *Registry) Declare(d Declaration) error {
	id := strings.TrimSpace(d.Identifier)
	if id == "" {
		return apperrors.NewRegistryError("declare", "", "type identifier must not be empty")
	}
	d.Identifier = id
	d.ConformsTo = lo.Uniq(lo.Compact(lo.Map(d.ConformsTo, func(p string, _ int) string {
		return strings.TrimSpace(p)
	})))
	d.Extensions = lo.Uniq(lo.Compact(lo.Map(d.Extensions, func(e string, _ int) string {
		return normalizeExtension(e)
	})))
	for _, p := range d.Patterns {
		if !doublestar.ValidatePattern(p) {
			return apperrors.NewRegistryError("declare", id, "invalid filename pattern "+p)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, parent := range d.ConformsTo {
		if parent == id || r.conformsLocked(parent, id) {
			return apperrors.NewRegistryError("declare", id, "conformance to "+parent+" would create a cycle")
		}
	}

	if old, exists := r.types[id]; exists {
		for _, ext := range old.Extensions {
			r.byExt[ext] = lo.Without(r.byExt[ext], id)
			if len(r.byExt[ext]) == 0 {
				delete(r.byExt, ext)
			}
		}
	} else {
		r.order = append(r.order, id)
	}
	r.types[id] = d
	for _, ext := range d.Extensions {
		r.byExt[ext] = append(r.byExt[ext], id)
	}
	return nil
}

// Lookup returns the declaration for identifier.
func (r *Registry) Lookup(identifier string) (Declaration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[identifier]
	return d, ok
}

// Identifiers returns all declared identifiers in declaration order.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// ConformsTo reports whether identifier equals parent or inherits from it.
// Undeclared identifiers conform only to themselves.
func (r *Registry) ConformsTo(identifier, parent string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conformsLocked(identifier, parent)
}

func (r *Registry) conformsLocked(identifier, parent string) bool {
	if identifier == parent {
		return true
	}
	found := false
	r.walkLocked(identifier, func(ancestor string) bool {
		found = ancestor == parent
		return !found
	})
	return found
}

// Ancestors returns every type identifier inherits from, nearest first.
func (r *Registry) Ancestors(identifier string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	r.walkLocked(identifier, func(ancestor string) bool {
		out = append(out, ancestor)
		return true
	})
	return out
}

// walkLocked visits the ancestors of identifier breadth first, each once.
// Iteration stops when visit returns false.
func (r *Registry) walkLocked(identifier string, visit func(string) bool) {
	seen := map[string]struct{}{identifier: {}}
	queue := []string{identifier}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, parent := range r.types[current].ConformsTo {
			if _, ok := seen[parent]; ok {
				continue
			}
			seen[parent] = struct{}{}
			if !visit(parent) {
				return
			}
			queue = append(queue, parent)
		}
	}
}

// PreferredExtension returns the extension to use for files of identifier.
func (r *Registry) PreferredExtension(identifier string) (string, bool) {
	d, ok := r.Lookup(identifier)
	if !ok || len(d.Extensions) == 0 {
		return "", false
	}
	return d.Extensions[0], true
}

// TypeForExtension returns the first declared type using ext. A leading dot
// is ignored and case does not matter.
func (r *Registry) TypeForExtension(ext string) (string, bool) {
	ext = normalizeExtension(ext)
	if ext == "" {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byExt[ext]
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// TypeForFilename maps a file name (or path) to a type. Filename patterns are
// tried first, in declaration order, then extensions from longest to shortest,
// so "backup.tar.gz" checks "tar.gz" before "gz".
func (r *Registry) TypeForFilename(name string) (string, bool) {
	base := path.Base(filepath.ToSlash(name))
	if base == "." || base == "/" {
		return "", false
	}

	r.mu.RLock()
	for _, id := range r.order {
		for _, p := range r.types[id].Patterns {
			if ok, _ := doublestar.Match(p, base); ok {
				r.mu.RUnlock()
				return id, true
			}
		}
	}
	r.mu.RUnlock()

	for _, ext := range Extensions(base) {
		if id, ok := r.TypeForExtension(ext); ok {
			return id, true
		}
	}
	return "", false
}

// Extensions lists the candidate extensions of a base name, longest first.
// Leading dots mark hidden files and never start an extension.
func Extensions(base string) []string {
	trimmed := strings.TrimLeft(base, ".")
	var out []string
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] == '.' && i+1 < len(trimmed) {
			out = append(out, trimmed[i+1:])
		}
	}
	return out
}

// Extension returns the last extension of a base name, or "".
func Extension(base string) string {
	exts := Extensions(path.Base(filepath.ToSlash(base)))
	if len(exts) == 0 {
		return ""
	}
	return exts[len(exts)-1]
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
