package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"

	"structview/internal/analyze"
	"structview/internal/manifest"
)

// fieldLayout is one row of the inspect table.
type fieldLayout struct {
	Index    int
	Name     string
	Type     string
	Offset   uintptr
	Size     uintptr
	Align    uintptr
	Padding  uintptr // Bytes between this field's end and the next field (or the record's end)
	Exported bool
	Embedded bool
}

// recordLayout is the measured layout of one struct.
type recordLayout struct {
	Type   string
	Layout string
	Fields []fieldLayout
}

func runInspect(ctx context.Context, o options, pattern, typeName string, dump bool) error {
	analyzer, err := analyze.NewAnalyzer(o.logger(), o.layout)
	if err != nil {
		return err
	}

	graph, err := analyzer.LoadPackages(ctx, pattern)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", pattern, err)
	}

	t := manifest.ResolveTypeID(typeName, graph)
	if t == nil {
		return fmt.Errorf("type %s not found in %s", typeName, pattern)
	}

	if t.Kind != analyze.TypeKindStruct {
		return fmt.Errorf("type %s is not a struct (kind: %s)", t.ID, t.Kind)
	}

	rl := describe(t, graph.Packages[t.ID.PkgPath])

	if dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(o.stdout, rl)

		return nil
	}

	fmt.Fprintf(o.stdout, "%s %s (%s/%s)\n", rl.Type, rl.Layout, o.layout.Compiler, o.layout.Arch)

	tw := tabwriter.NewWriter(o.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFIELD\tTYPE\tOFFSET\tSIZE\tALIGN\tPAD")

	for _, f := range rl.Fields {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n", f.Index, f.Name, f.Type, f.Offset, f.Size, f.Align, f.Padding)
	}

	return tw.Flush()
}

func describe(t *analyze.TypeInfo, pkg *analyze.PackageInfo) recordLayout {
	stringer := analyze.NewTypeStringer(nil)
	if pkg != nil {
		stringer = analyze.NewTypeStringer(pkg.Pkg)
	}

	rl := recordLayout{
		Type:   t.ID.String(),
		Layout: analyze.LayoutString(t),
		Fields: make([]fieldLayout, len(t.Fields)),
	}

	for i := range t.Fields {
		f := &t.Fields[i]

		end := t.Size
		if i+1 < len(t.Fields) {
			end = t.Fields[i+1].Offset
		}

		rl.Fields[i] = fieldLayout{
			Index:    i,
			Name:     f.Name,
			Type:     stringer.TypeString(f.Type),
			Offset:   f.Offset,
			Size:     f.Size,
			Align:    f.Align,
			Padding:  end - f.Offset - f.Size,
			Exported: f.Exported,
			Embedded: f.Embedded,
		}
	}

	return rl
}
