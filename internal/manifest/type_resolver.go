package manifest

import (
	"sort"
	"strings"

	"structview/internal/analyze"
)

// ResolveTypeID resolves a type ID string like:
// - "store.Order" (short)
// - "structview/store.Order" (full)
// - "Order" (name only).
func ResolveTypeID(typeIDStr string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	if graph == nil {
		return nil
	}

	// Name-only: best-effort match by type name, in a stable package order.
	if !strings.Contains(typeIDStr, ".") {
		name := typeIDStr
		if name == "" {
			return nil
		}

		for _, id := range SortedTypeIDs(graph) {
			if id.Name == name {
				return graph.Types[id]
			}
		}

		return nil
	}

	lastDot := strings.LastIndex(typeIDStr, ".")

	pkgStr := typeIDStr[:lastDot]

	name := typeIDStr[lastDot+1:]
	if pkgStr == "" || name == "" {
		return nil
	}

	// 1) exact match (for fully qualified import path)
	if t := graph.GetType(analyze.TypeID{PkgPath: pkgStr, Name: name}); t != nil {
		return t
	}

	// 2) suffix match (for short forms like "store.Order" vs "structview/store.Order")
	for _, id := range SortedTypeIDs(graph) {
		if id.Name != name {
			continue
		}

		if id.PkgPath == pkgStr || strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			return graph.Types[id]
		}
	}

	return nil
}

// ShortName returns the "pkgname.Type" spelling of a type in the graph.
func ShortName(id analyze.TypeID, graph *analyze.TypeGraph) string {
	if pkg, ok := graph.Packages[id.PkgPath]; ok {
		return pkg.Name + "." + id.Name
	}

	return id.String()
}

// SortedTypeIDs returns every type of the graph ordered by package path, then name.
func SortedTypeIDs(graph *analyze.TypeGraph) []analyze.TypeID {
	ids := make([]analyze.TypeID, 0, len(graph.Types))
	for id := range graph.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].PkgPath != ids[j].PkgPath {
			return ids[i].PkgPath < ids[j].PkgPath
		}

		return ids[i].Name < ids[j].Name
	})

	return ids
}
