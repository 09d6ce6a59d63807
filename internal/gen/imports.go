package gen

import (
	"fmt"
	"go/types"
	"sort"
	"strconv"

	"structview/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string // Empty when the package name is used as is
	Path  string
}

// importSet collects the imports of one generated file and hands out a unique
// local name per package.
type importSet struct {
	selfPath string            // Import path of the package the file belongs to, if known
	names    map[string]string // path -> local name
	taken    map[string]string // local name -> path
	specs    []importSpec
	// inaccessible collects types that cannot be named from the file's package
	inaccessible []string
}

func newImportSet(selfPath string, reserved ...string) *importSet {
	s := &importSet{
		selfPath: selfPath,
		names:    make(map[string]string),
		taken:    make(map[string]string),
	}

	for _, name := range reserved {
		s.taken[name] = ""
	}

	return s
}

// add imports path under its package name, or under a numbered alias when the name is taken.
func (s *importSet) add(path, name string) string {
	if path == s.selfPath {
		return ""
	}

	if local, ok := s.names[path]; ok {
		return local
	}

	if name == "" {
		name = common.PkgAlias(path)
	}

	local := name
	for i := 2; ; i++ {
		if _, clash := s.taken[local]; !clash {
			break
		}

		local = name + strconv.Itoa(i)
	}

	s.names[path] = local
	s.taken[local] = path

	spec := importSpec{Path: path}
	if local != name {
		spec.Alias = local
	}

	s.specs = append(s.specs, spec)

	return local
}

// qualifier is a types.Qualifier that imports every package it is asked about.
func (s *importSet) qualifier(pkg *types.Package) string {
	return s.add(pkg.Path(), pkg.Name())
}

// typeString renders t as it must be spelled in the file, importing what it needs.
func (s *importSet) typeString(t types.Type) string {
	s.checkAccess(t)

	return types.TypeString(t, s.qualifier)
}

// checkAccess records unexported named types of other packages reachable from t.
func (s *importSet) checkAccess(t types.Type) {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() != s.selfPath && !obj.Exported() {
			s.inaccessible = append(s.inaccessible, types.TypeString(t, nil))
		}

		args := tt.TypeArgs()
		for i := range args.Len() {
			s.checkAccess(args.At(i))
		}

	case *types.Pointer:
		s.checkAccess(tt.Elem())
	case *types.Slice:
		s.checkAccess(tt.Elem())
	case *types.Array:
		s.checkAccess(tt.Elem())
	case *types.Map:
		s.checkAccess(tt.Key())
		s.checkAccess(tt.Elem())
	case *types.Chan:
		s.checkAccess(tt.Elem())
	case *types.Struct:
		for i := range tt.NumFields() {
			s.checkAccess(tt.Field(i).Type())
		}
	}
}

func (s *importSet) err() error {
	if len(s.inaccessible) == 0 {
		return nil
	}

	return fmt.Errorf("types %v are unexported and cannot be named from the output package", s.inaccessible)
}

// sorted returns the imports in path order.
func (s *importSet) sorted() []importSpec {
	res := append([]importSpec(nil), s.specs...)

	sort.Slice(res, func(i, j int) bool {
		return res[i].Path < res[j].Path
	})

	return res
}
