package plan

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"log/slog"
	"path/filepath"
	"strings"

	"structview/internal/analyze"
	"structview/internal/diagnostic"
	"structview/internal/manifest"
	"structview/internal/match"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// MaxSuggestions is the maximum number of "did you mean" names on a missing record.
	MaxSuggestions int
	// WideThreshold is the member count above which a record is reported as wide.
	WideThreshold int
	// StrictMode turns warnings into a failed resolution.
	StrictMode bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		MaxSuggestions: 3,
		WideThreshold:  64,
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	logger   *slog.Logger
	graph    *analyze.TypeGraph
	manifest *manifest.Manifest
	config   ResolutionConfig
}

// NewResolver creates a new Resolver.
func NewResolver(
	logger *slog.Logger,
	graph *analyze.TypeGraph,
	m *manifest.Manifest,
	config ResolutionConfig,
) *Resolver {
	return &Resolver{
		logger:   logger,
		graph:    graph,
		manifest: m,
		config:   config,
	}
}

// Resolve runs the full resolution pipeline and returns a Plan.
// Findings go to Plan.Diagnostics; the error is reserved for cancellation and
// unusable input.
func (r *Resolver) Resolve(ctx context.Context) (*Plan, error) {
	if r.manifest == nil {
		return nil, errors.New("manifest is required")
	}

	if r.graph == nil {
		return nil, errors.New("type graph is required")
	}

	plan := &Plan{TypeGraph: r.graph}

	seen := make(map[analyze.TypeID]string)

	for _, spec := range r.manifest.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rp := r.resolveRecord(spec, &plan.Diagnostics)
		if rp == nil {
			continue
		}

		if prev, dup := seen[rp.Type.ID]; dup {
			plan.Diagnostics.AddError(diagnostic.CodeDuplicateRecord,
				fmt.Sprintf("%s names the same type as %q", rp.Type.ID, prev), spec.Type, "")

			continue
		}
		seen[rp.Type.ID] = spec.Type

		r.logger.Debug("resolved record",
			slog.String("record", rp.Type.ID.String()),
			slog.Int("members", len(rp.Members)),
			slog.Bool("declared", rp.Declared),
			slog.String("output", rp.OutputDir))

		plan.Records = append(plan.Records, *rp)
	}

	if r.config.StrictMode && (plan.Diagnostics.HasErrors() || len(plan.Diagnostics.Warnings) > 0) {
		return plan, errors.New("strict mode: resolution reported errors or warnings")
	}

	return plan, nil
}

// resolveRecord resolves one manifest entry. It returns nil when an error was reported.
func (r *Resolver) resolveRecord(spec manifest.RecordSpec, diags *diagnostic.Diagnostics) *RecordPlan {
	var local diagnostic.Diagnostics
	defer func() { diags.Merge(local) }()

	if strings.HasPrefix(spec.Type, "*") {
		local.AddError(diagnostic.CodeQualifiedRecord,
			fmt.Sprintf("record %q is a pointer type; name the struct itself", spec.Type), spec.Type, "")

		return nil
	}

	t := manifest.ResolveTypeID(spec.Type, r.graph)
	if t == nil {
		local.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        diagnostic.CodeRecordNotFound,
			Message:     fmt.Sprintf("record type %q not found in the loaded packages", spec.Type),
			Record:      spec.Type,
			Suggestions: match.Suggest(spec.Type, r.knownNames(spec.Type), r.config.MaxSuggestions),
		})

		return nil
	}

	if !r.checkKind(spec, t, &local) {
		return nil
	}

	pkg := r.graph.Packages[t.ID.PkgPath]

	rp := &RecordPlan{
		Spec:       spec,
		Type:       t,
		Package:    pkg,
		Identifier: spec.Identifier(),
		Declared:   spec.HasMembers(),
		ReadOnly:   spec.ReadOnly,
	}

	r.placeOutput(rp)

	memberTypes := fieldTypes(t)
	if rp.Declared {
		memberTypes = r.evalMembers(rp, &local)
		if memberTypes == nil {
			return nil
		}
	}

	if !r.checkMembers(rp, memberTypes, &local) {
		return nil
	}

	r.checkFields(rp, &local)

	if local.HasErrors() {
		return nil
	}

	return rp
}

// knownNames lists struct type names spelled the way the missing record was.
func (r *Resolver) knownNames(spelled string) []string {
	var names []string

	qualified := strings.Contains(spelled, ".")

	for _, id := range manifest.SortedTypeIDs(r.graph) {
		if r.graph.Types[id].Kind != analyze.TypeKindStruct {
			continue
		}

		if qualified {
			names = append(names, manifest.ShortName(id, r.graph))
		} else {
			names = append(names, id.Name)
		}
	}

	return names
}

func (r *Resolver) checkKind(spec manifest.RecordSpec, t *analyze.TypeInfo, diags *diagnostic.Diagnostics) bool {
	switch t.Kind {
	case analyze.TypeKindStruct:
		return true

	case analyze.TypeKindAlias:
		if u := t.Underlying; u != nil && (u.Kind == analyze.TypeKindPointer || u.Kind == analyze.TypeKindSlice) {
			diags.AddError(diagnostic.CodeQualifiedRecord,
				fmt.Sprintf("%s is a %s type; name the struct itself", t.ID, u.Kind), spec.Type, "")

			return false
		}

	case analyze.TypeKindGeneric:
		diags.AddError(diagnostic.CodeNotAStruct,
			fmt.Sprintf("%s is generic; declare a named instantiation (type X = %s[...]) and list that", t.ID, t.ID.Name),
			spec.Type, "")

		return false
	}

	diags.AddError(diagnostic.CodeNotAStruct,
		fmt.Sprintf("%s is not a struct (kind: %s)", t.ID, t.Kind), spec.Type, "")

	return false
}

// placeOutput decides where the generated file goes and which package it joins.
func (r *Resolver) placeOutput(rp *RecordPlan) {
	rp.OutputDir = rp.Package.Dir
	rp.OutputPackage = rp.Package.Name
	rp.OutputPkgPath = rp.Package.Path

	if rp.Spec.Output == "" {
		return
	}

	dir := rp.Spec.Output
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.manifest.Dir, dir)
	}

	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	rp.OutputDir = dir

	if dir == filepath.Clean(rp.Package.Dir) {
		return
	}

	rp.External = true
	rp.OutputPackage = packageNameFor(filepath.Base(dir))
	rp.OutputPkgPath = ""

	for _, p := range r.graph.Packages {
		if p.Dir != "" && filepath.Clean(p.Dir) == dir {
			rp.OutputPackage = p.Name
			rp.OutputPkgPath = p.Path

			break
		}
	}
}

func (r *Resolver) evalMembers(rp *RecordPlan, diags *diagnostic.Diagnostics) []types.Type {
	pos := declPos(rp.Type)
	res := make([]types.Type, len(rp.Spec.Members))
	failed := false

	for i, expr := range rp.Spec.Members {
		t, err := evalMember(rp.Package, pos, strings.TrimSpace(expr))
		if err != nil {
			diags.AddError(diagnostic.CodeInvalidMember,
				fmt.Sprintf("member %q: %v", expr, err), rp.Spec.Type, analyze.NewTypePath(rp.Name()).Member(i).String())

			failed = true

			continue
		}

		res[i] = t
	}

	if failed {
		return nil
	}

	return res
}

// checkMembers compares the member list with the record through the surrogate and
// fills rp.Members. It returns false when the members cannot describe the record.
func (r *Resolver) checkMembers(rp *RecordPlan, memberTypes []types.Type, diags *diagnostic.Diagnostics) bool {
	sizes := r.graph.Sizes
	record := rp.Spec.Type
	path := func(i int) string { return analyze.NewTypePath(rp.Name()).Member(i).String() }

	zero := false

	for i, m := range memberTypes {
		if sizes.Sizeof(m) == 0 {
			diags.AddError(diagnostic.CodeZeroSizeMember,
				fmt.Sprintf("member %d (%s) has size 0; zero-size members are not supported", i, m), record, path(i))

			zero = true
		}
	}

	if zero {
		return false
	}

	s, err := newSurrogate(memberTypes, sizes)
	if err != nil {
		diags.AddError(diagnostic.CodeInvalidMember, err.Error(), record, "")
		return false
	}

	t := rp.Type
	ok := true

	if s.size != t.Size {
		diags.AddError(diagnostic.CodeSizeMismatch,
			fmt.Sprintf("record %s is %d bytes, its %d members describe %d bytes", t.ID.Name, t.Size, len(memberTypes), s.size),
			record, "")

		ok = false
	}

	if s.align != t.Align {
		diags.AddError(diagnostic.CodeAlignMismatch,
			fmt.Sprintf("record %s is aligned to %d, its members describe %d", t.ID.Name, t.Align, s.align),
			record, "")

		ok = false
	}

	paired := len(memberTypes) == len(t.Fields)

	if !paired && ok {
		if ok = flatViewable(t, memberTypes); ok {
			diags.AddInfo(diagnostic.CodeMemberCountMismatch,
				fmt.Sprintf("record %s has %d fields, viewed as %d members", t.ID.Name, len(t.Fields), len(memberTypes)),
				record, "")
		} else {
			diags.AddError(diagnostic.CodeMemberCountMismatch,
				fmt.Sprintf("record %s has %d fields, viewed as %d members, and pointers are involved; only pointer-free records can be viewed with a different member count",
					t.ID.Name, len(t.Fields), len(memberTypes)),
				record, "")
		}
	}

	rp.Members = make([]Member, len(memberTypes))

	for i, m := range memberTypes {
		member := Member{
			Index:  i,
			Type:   m,
			Offset: s.offsets[i],
			Size:   s.sizes[i],
			Align:  s.aligns[i],
		}

		if paired {
			f := &t.Fields[i]
			member.Field = f

			if f.Offset != member.Offset {
				diags.AddError(diagnostic.CodeOffsetMismatch,
					fmt.Sprintf("record %s field %s is at %d, member %d describes %d", t.ID.Name, f.Name, f.Offset, i, member.Offset),
					record, path(i))

				ok = false
			}

			compat := match.ScoreMemberCompatibility(m, f.Type.GoType, sizes)
			member.Compatibility = compat.Compatibility

			switch compat.Compatibility {
			case match.MemberIncompatible:
				diags.AddError(diagnostic.CodeMemberTypeMismatch,
					fmt.Sprintf("member %d (%s) does not fit field %s (%s): %s", i, compat.MemberType, f.Name, compat.FieldType, compat.Reason),
					record, path(i))

				ok = false

			case match.MemberLayoutCompatible:
				diags.AddWarning(diagnostic.CodeMemberTypeMismatch,
					fmt.Sprintf("member %d (%s) reinterprets field %s (%s): %s", i, compat.MemberType, f.Name, compat.FieldType, compat.Reason),
					record, path(i))
			}
		}

		rp.Members[i] = member
	}

	if len(memberTypes) > r.config.WideThreshold {
		diags.AddInfo(diagnostic.CodeWideRecord,
			fmt.Sprintf("record %s has %d members; flattening recurses %d levels deep", t.ID.Name, len(memberTypes), depthOf(len(memberTypes))),
			record, "")
	}

	return ok
}

// flatViewable reports whether neither the record nor any member holds pointers.
func flatViewable(t *analyze.TypeInfo, memberTypes []types.Type) bool {
	if match.ContainsPointers(t.GoType) {
		return false
	}

	for _, m := range memberTypes {
		if match.ContainsPointers(m) {
			return false
		}
	}

	return true
}

// checkFields reports fields generated code cannot select by name.
func (r *Resolver) checkFields(rp *RecordPlan, diags *diagnostic.Diagnostics) {
	for i := range rp.Type.Fields {
		f := &rp.Type.Fields[i]
		path := analyze.NewTypePath(rp.Name()).Field(f.Name).String()

		if f.IsBlank() {
			diags.AddWarning(diagnostic.CodeBlankField,
				fmt.Sprintf("field %d is blank; it is reached by offset and its offset is not asserted at compile time", i),
				rp.Spec.Type, path)

			continue
		}

		if rp.External && !f.Exported {
			diags.AddWarning(diagnostic.CodeUnexportedField,
				fmt.Sprintf("field %s is unexported and the output package %s is not %s; it is reached by offset",
					f.Name, rp.OutputPackage, rp.Package.Name),
				rp.Spec.Type, path)
		}
	}
}

// depthOf is the recursion depth of flattening n members by halves.
func depthOf(n int) int {
	d := 1
	for n > 1 {
		n = (n + 1) / 2
		d++
	}

	return d
}
