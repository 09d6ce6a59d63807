package manifest

import (
	"fmt"
	"go/token"
	"strings"

	"structview/internal/diagnostic"
)

// Validate checks the manifest on its own, before any package is loaded.
func Validate(m *Manifest) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	if m.Version != CurrentVersion {
		res.AddError(diagnostic.CodeInvalidManifest,
			fmt.Sprintf("unsupported manifest version %q (want %q)", m.Version, CurrentVersion), "", "")
	}

	if len(m.Records) == 0 {
		res.AddWarning(diagnostic.CodeInvalidManifest, "manifest lists no records", "", "")
	}

	seenTypes := make(map[string]int)
	seenNames := make(map[string]string)

	for i := range m.Records {
		r := &m.Records[i]
		where := fmt.Sprintf("records[%d]", i)

		if r.Type == "" {
			res.AddError(diagnostic.CodeInvalidManifest, "record type is required", "", where)
			continue
		}

		if strings.HasPrefix(r.Type, "*") || strings.HasPrefix(r.Type, "[]") {
			res.AddError(diagnostic.CodeQualifiedRecord,
				fmt.Sprintf("record %q must name a struct type, not a pointer or slice; strip the qualifier", r.Type),
				r.Type, where)

			continue
		}

		if prev, dup := seenTypes[r.Type]; dup {
			res.AddError(diagnostic.CodeDuplicateRecord,
				fmt.Sprintf("record %q already listed at records[%d]", r.Type, prev), r.Type, where)

			continue
		}
		seenTypes[r.Type] = i

		id := r.Identifier()
		if !token.IsIdentifier(id) {
			res.AddError(diagnostic.CodeInvalidManifest,
				fmt.Sprintf("name %q is not a valid Go identifier", id), r.Type, where)
		} else if other, dup := seenNames[id]; dup {
			res.AddError(diagnostic.CodeDuplicateRecord,
				fmt.Sprintf("name %q is also used by record %q; set a distinct name", id, other), r.Type, where)
		} else {
			seenNames[id] = r.Type
		}

		for j, member := range r.Members {
			if strings.TrimSpace(member) == "" {
				res.AddError(diagnostic.CodeInvalidMember, "member type is empty", r.Type,
					fmt.Sprintf("%s.members[%d]", where, j))
			}
		}
	}

	return res
}
