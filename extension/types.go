package extension

import (
	"strings"

	"github.com/viant/x"
)

// Import associates a package alias with its import path, letting manifest
// type references use the short form.
type Import struct {
	Package string
	PkgPath string
}

// Imports is a collection of package aliases.
type Imports []*Import

// HasPkgPath reports whether the path is already tracked.
func (i Imports) HasPkgPath(pkgPath string) bool {
	for _, candidate := range i {
		if candidate.PkgPath == pkgPath {
			return true
		}
	}
	return false
}

// PkgPath returns the import path registered for a package alias, or empty.
func (i Imports) PkgPath(pkg string) string {
	for _, candidate := range i {
		if candidate.Package == pkg {
			return candidate.PkgPath
		}
	}
	return ""
}

// Types is a name-indexed registry of resource types. It wraps x.Registry
// and tracks package imports so manifests can reference types either by
// short name or by alias-qualified name.
type Types struct {
	x.Registry
	imports Imports
}

// Register adds a resource type to the registry.
func (t *Types) Register(dataType *x.Type) {
	if dataType.PkgPath != "" {
		if idx := strings.LastIndex(dataType.PkgPath, "/"); idx > 0 {
			pkgPath := dataType.PkgPath[:idx]
			if !t.imports.HasPkgPath(pkgPath) {
				t.imports = append(t.imports, &Import{Package: dataType.PkgPath[idx+1:], PkgPath: dataType.PkgPath})
			}
		}
	}
	t.Registry.Register(dataType)
}

// Lookup returns a resource type by name, resolving alias-qualified names
// against the tracked imports.
func (t *Types) Lookup(dataType string) *x.Type {
	if idx := strings.LastIndex(dataType, "."); idx != -1 {
		pkg, typeName := dataType[:idx], dataType[idx+1:]
		if pkgPath := t.imports.PkgPath(pkg); pkgPath != "" {
			dataType = pkgPath + "." + typeName
		}
	}
	return t.Registry.Lookup(dataType)
}

// Imports returns the tracked package aliases.
func (t *Types) Imports() Imports {
	return t.imports
}

// NewTypes creates a type registry.
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{Registry: *x.NewRegistry(options...)}
}
