package plan

import (
	"fmt"
	"go/token"
	"go/types"

	"structview/internal/analyze"
)

// evalMember evaluates a member type expression in the scope of the file that
// declares the record, so the file's imports are visible ("time.Time").
func evalMember(pkg *analyze.PackageInfo, pos token.Pos, expr string) (types.Type, error) {
	if pkg.Pkg == nil {
		return nil, fmt.Errorf("package %s has no type information", pkg.Path)
	}

	tv, err := types.Eval(pkg.Fset, pkg.Pkg, pos, expr)
	if err != nil {
		return nil, err
	}

	if !tv.IsType() {
		return nil, fmt.Errorf("%q is not a type", expr)
	}

	return tv.Type, nil
}

// declPos returns the position of the record's type name.
func declPos(t *analyze.TypeInfo) token.Pos {
	if named, ok := t.GoType.(*types.Named); ok {
		return named.Obj().Pos()
	}

	return token.NoPos
}

func fieldTypes(t *analyze.TypeInfo) []types.Type {
	res := make([]types.Type, len(t.Fields))
	for i := range t.Fields {
		res[i] = t.Fields[i].Type.GoType
	}

	return res
}
