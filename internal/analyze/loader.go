package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Config selects the layout model and the directory patterns are resolved from.
type Config struct {
	// Compiler is the compiler whose layout rules apply ("gc" or "gccgo").
	Compiler string
	// Arch is the GOARCH whose sizes and alignments apply.
	Arch string
	// Dir is the working directory for package patterns; empty means the process directory.
	Dir string
}

// DefaultConfig returns the host gc layout model.
func DefaultConfig() Config {
	return Config{
		Compiler: "gc",
		Arch:     runtime.GOARCH,
	}
}

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	logger    *slog.Logger
	config    Config
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
}

// NewAnalyzer creates a new Analyzer for the configured compiler and architecture.
func NewAnalyzer(logger *slog.Logger, config Config) (*Analyzer, error) {
	sizes := types.SizesFor(config.Compiler, config.Arch)
	if sizes == nil {
		return nil, fmt.Errorf("no layout model for compiler %q and architecture %q", config.Compiler, config.Arch)
	}

	return &Analyzer{
		logger:    logger,
		config:    config,
		graph:     NewTypeGraph(sizes),
		typeCache: make(map[types.Type]*TypeInfo),
	}, nil
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./store", "structview/store").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.config.Dir,
	}

	if a.config.Arch != runtime.GOARCH {
		cfg.Env = append(os.Environ(), "GOARCH="+a.config.Arch)
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors. Errors confined to generated files are stale
	// layout assertions, and regenerating them is why the packages are loaded.
	var errs []error
	for _, pkg := range pkgs {
		generated := generatedFiles(pkg)

		for _, e := range pkg.Errors {
			if inFiles(e, generated) {
				a.logger.Warn("ignoring error in generated file", slog.String("error", e.Error()))
				continue
			}

			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	// Register every package first so isExternalPackage sees the whole set
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
			Dir:  packageDir(pkg),
			Pkg:  pkg.Types,
			Fset: pkg.Fset,
		}
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// generatedFiles returns the names of the files carrying a "Code generated" header.
func generatedFiles(pkg *packages.Package) []string {
	var names []string

	for _, f := range pkg.Syntax {
		if ast.IsGenerated(f) {
			names = append(names, pkg.Fset.File(f.Pos()).Name())
		}
	}

	return names
}

// errorPos matches the Pos of a located error ("/abs/b_fields.go:15:8").
var errorPos = regexp.MustCompile(`^(.+?):\d+(?::\d+)?$`)

// errorLine matches the location of a compiler diagnostic ("./b_fields.go:15:8: ...").
var errorLine = regexp.MustCompile(`(\S+\.go):\d+(?::\d+)?: `)

// inFiles reports whether e points only into the named files.
//
// Type errors carry their position in Pos. The go command reports a package that
// fails to compile as one ListError without a position ("-"), its message holding
// a "# pkg" line followed by one "file:line:col: msg" line per error; such an
// error is confined to names when every located line is.
func inFiles(e packages.Error, names []string) bool {
	if m := errorPos.FindStringSubmatch(e.Pos); m != nil {
		return hasFile(names, m[1])
	}

	located := errorLine.FindAllStringSubmatch(e.Msg, -1)
	for _, m := range located {
		if !hasFile(names, m[1]) {
			return false
		}
	}

	return len(located) > 0
}

// hasFile reports whether file, absolute or relative to some directory, is one of names.
func hasFile(names []string, file string) bool {
	file = filepath.ToSlash(filepath.Clean(file))

	for _, name := range names {
		name = filepath.ToSlash(name)
		if name == file || strings.HasSuffix(name, "/"+file) {
			return true
		}
	}

	return false
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}

	return ""
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := a.graph.Packages[pkg.PkgPath]

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		typeInfo, err := a.analyzeType(typeName.Type())
		if err != nil {
			return fmt.Errorf("type %s: %w", typeID, err)
		}

		typeInfo.ID = typeID
		typeInfo.Exported = typeName.Exported()

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)

		a.logger.Debug("analyzed type",
			slog.String("type", typeID.String()),
			slog.String("kind", typeInfo.Kind.String()),
			slog.Uint64("size", uint64(typeInfo.Size)),
			slog.Int("fields", len(typeInfo.Fields)))
	}

	return nil
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) (*TypeInfo, error) {
	if alias, ok := t.(*types.Alias); ok {
		return a.analyzeType(types.Unalias(alias))
	}

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached, nil
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	if named, ok := t.(*types.Named); ok && named.TypeParams().Len() > 0 && named.TypeArgs().Len() == 0 {
		a.describeNamed(named, info)
		info.Kind = TypeKindGeneric

		return info, nil
	}

	if err := a.measure(t, info); err != nil {
		return nil, err
	}

	var err error

	switch tt := t.(type) {
	case *types.Named:
		err = a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType, err = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType, err = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType, err = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		err = a.analyzeStructFields(tt, info)

	default:
		// Maps, interfaces, channels, funcs: opaque to layout, only their size matters
		info.Kind = TypeKindUnknown
	}

	if err != nil {
		return nil, err
	}

	return info, nil
}

func (a *Analyzer) describeNamed(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	if obj.Pkg() == nil {
		// Universe types such as error
		info.ID = TypeID{Name: obj.Name()}
		return
	}

	info.ID = TypeID{
		PkgPath: obj.Pkg().Path(),
		Name:    obj.Name(),
	}
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) error {
	a.describeNamed(named, info)

	if a.isExternalPackage(info.ID.PkgPath) {
		// External/opaque type (e.g., time.Time): its layout is known, its fields are not ours
		info.Kind = TypeKindExternal
		return nil
	}

	var err error

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		err = a.analyzeStructFields(ut, info)

	default:
		// Named type wrapping something else in our packages (e.g., type OrderStatus string)
		info.Kind = TypeKindAlias
		info.Underlying, err = a.analyzeType(ut)
	}

	return err
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// measure fills in the size and alignment of t.
func (a *Analyzer) measure(t types.Type, info *TypeInfo) error {
	var err error

	info.Size, err = safecast.Conv[uintptr](a.graph.Sizes.Sizeof(t))
	if err != nil {
		return fmt.Errorf("size of %s: %w", t, err)
	}

	info.Align, err = safecast.Conv[uintptr](a.graph.Sizes.Alignof(t))
	if err != nil {
		return fmt.Errorf("alignment of %s: %w", t, err)
	}

	return nil
}

// analyzeStructFields extracts all fields of a struct type with their offsets.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) error {
	vars := make([]*types.Var, st.NumFields())
	for i := range vars {
		vars[i] = st.Field(i)
	}

	offsets := a.graph.Sizes.Offsetsof(vars)

	info.Fields = make([]FieldInfo, 0, len(vars))

	for i, field := range vars {
		fieldType, err := a.analyzeType(field.Type())
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name(), err)
		}

		offset, err := safecast.Conv[uintptr](offsets[i])
		if err != nil {
			return fmt.Errorf("offset of field %s: %w", field.Name(), err)
		}

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     fieldType,
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
			Offset:   offset,
			Size:     fieldType.Size,
			Align:    fieldType.Align,
		}

		if pkg, ok := a.graph.Packages[pkgPathOf(field)]; ok && pkg.Fset != nil {
			fieldInfo.Pos = pkg.Fset.Position(field.Pos())
		}

		info.Fields = append(info.Fields, fieldInfo)
	}

	return nil
}

func pkgPathOf(v *types.Var) string {
	if v.Pkg() == nil {
		return ""
	}

	return v.Pkg().Path()
}

// GetStruct returns the TypeInfo for a named struct by its package path and name.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}
	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}
	return info, nil
}
