package plan

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structview/internal/analyze"
	"structview/internal/diagnostic"
	"structview/internal/manifest"
	"structview/internal/match"
)

const storePkg = "structview/store"

func loadStore(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	analyzer, err := analyze.NewAnalyzer(slogt.New(t), analyze.Config{Compiler: "gc", Arch: "amd64"})
	require.NoError(t, err)

	graph, err := analyzer.LoadPackages(t.Context(), storePkg)
	require.NoError(t, err)

	return graph
}

func resolve(t *testing.T, graph *analyze.TypeGraph, config ResolutionConfig, records ...manifest.RecordSpec) *Plan {
	t.Helper()

	m := &manifest.Manifest{Version: manifest.CurrentVersion, Records: records, Dir: t.TempDir()}

	plan, err := NewResolver(slogt.New(t), graph, m, config).Resolve(t.Context())
	require.NoError(t, err)

	return plan
}

func TestResolver_InferredMembers(t *testing.T) {
	plan := resolve(t, loadStore(t), DefaultConfig(), manifest.RecordSpec{Type: "store.Order"})
	require.True(t, plan.Diagnostics.IsValid(), plan.Diagnostics.All())
	require.Len(t, plan.Records, 1)

	rp := plan.Records[0]
	assert.Equal(t, "Order", rp.Identifier)
	assert.Equal(t, "order_fields.go", rp.FileName())
	assert.Equal(t, rp.Package.Dir, rp.OutputDir)
	assert.Equal(t, "store", rp.OutputPackage)
	assert.False(t, rp.External)
	assert.False(t, rp.Declared)
	assert.False(t, rp.IsFlatView())

	wantOffsets := []uintptr{0, 8, 16, 32, 40, 64}
	require.Len(t, rp.Members, len(wantOffsets))

	for i, m := range rp.Members {
		assert.Equal(t, wantOffsets[i], m.Offset, "member %d", i)
		assert.Equal(t, m.Field.Size, m.Size, "member %d", i)
		assert.Equal(t, m.Field.Align, m.Align, "member %d", i)
		assert.Equal(t, match.MemberIdentical, m.Compatibility)
		assert.Same(t, &rp.Type.Fields[i], m.Field)
		assert.True(t, m.Selectable(false))
	}
}

func TestResolver_DeclaredMembers(t *testing.T) {
	plan := resolve(t, loadStore(t), DefaultConfig(), manifest.RecordSpec{
		Type:    "structview/store.Order",
		Name:    "OrderView",
		Members: []string{"int64", "int64", "OrderStatus", "int64", "[]OrderItem", "time.Time"},
	})
	require.True(t, plan.Diagnostics.IsValid(), plan.Diagnostics.All())
	require.Len(t, plan.Records, 1)

	rp := plan.Records[0]
	assert.True(t, rp.Declared)
	assert.Equal(t, "order_view_fields.go", rp.FileName())
	assert.Equal(t, "time.Time", rp.Members[5].Type.String())
	assert.Equal(t, "structview/store.OrderStatus", rp.Members[2].Type.String())
}

func TestResolver_Reinterpretation(t *testing.T) {
	plan := resolve(t, loadStore(t), DefaultConfig(), manifest.RecordSpec{
		Type:    "store.Order",
		Members: []string{"uint64", "int64", "OrderStatus", "int64", "[]OrderItem", "time.Time"},
	})

	require.True(t, plan.Diagnostics.IsValid(), plan.Diagnostics.All())
	require.Len(t, plan.Records, 1)

	warnings := plan.Diagnostics.ByCode(diagnostic.CodeMemberTypeMismatch)
	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostic.DiagnosticWarning, warnings[0].Severity)
	assert.Equal(t, "Order.#0", warnings[0].FieldPath)

	m := plan.Records[0].Members[0]
	assert.Equal(t, match.MemberLayoutCompatible, m.Compatibility)
	assert.False(t, m.Selectable(false), "a reinterpreted field is reached by offset")
}

func TestResolver_Errors(t *testing.T) {
	graph := loadStore(t)

	tests := []struct {
		name    string
		spec    manifest.RecordSpec
		code    diagnostic.Code
		message string
	}{
		{
			name:    "size",
			spec:    manifest.RecordSpec{Type: "store.Order", Members: []string{"int64", "int64"}},
			code:    diagnostic.CodeSizeMismatch,
			message: "record Order is 88 bytes, its 2 members describe 16 bytes",
		},
		{
			name:    "align",
			spec:    manifest.RecordSpec{Type: "store.Span", Members: []string{"[8]byte"}},
			code:    diagnostic.CodeAlignMismatch,
			message: "record Span is aligned to 4, its members describe 1",
		},
		{
			name:    "flat view with pointers",
			spec:    manifest.RecordSpec{Type: "store.Customer", Members: []string{"int64", "bool", "uint8", "string", "*string", "bool", "[8]byte"}},
			code:    diagnostic.CodeMemberCountMismatch,
			message: "pointers are involved",
		},
		{
			name:    "integer over pointer",
			spec:    manifest.RecordSpec{Type: "store.Customer", Members: []string{"bool", "int64", "uint8", "string", "uintptr", "bool"}},
			code:    diagnostic.CodeMemberTypeMismatch,
			message: "member 4 (uintptr) does not fit field Address (*string): the types differ and one of them holds pointers",
		},
		{
			name:    "member type",
			spec:    manifest.RecordSpec{Type: "store.OrderItem", Members: []string{"int64", "bool", "int32", "int64", "string"}},
			code:    diagnostic.CodeMemberTypeMismatch,
			message: "member 1 (bool) does not fit field Quantity (int32)",
		},
		{
			name:    "pointer spelled",
			spec:    manifest.RecordSpec{Type: "*store.Order"},
			code:    diagnostic.CodeQualifiedRecord,
			message: "pointer type",
		},
		{
			name:    "pointer named",
			spec:    manifest.RecordSpec{Type: "store.OrderRef"},
			code:    diagnostic.CodeQualifiedRecord,
			message: "is a pointer type",
		},
		{
			name:    "not a struct",
			spec:    manifest.RecordSpec{Type: "store.OrderStatus"},
			code:    diagnostic.CodeNotAStruct,
			message: "is not a struct (kind: alias)",
		},
		{
			name:    "generic",
			spec:    manifest.RecordSpec{Type: "store.Page"},
			code:    diagnostic.CodeNotAStruct,
			message: "is generic",
		},
		{
			name:    "zero size",
			spec:    manifest.RecordSpec{Type: "store.Envelope"},
			code:    diagnostic.CodeZeroSizeMember,
			message: "member 0 (structview/store.Marker) has size 0",
		},
		{
			name:    "unknown member type",
			spec:    manifest.RecordSpec{Type: "store.Span", Members: []string{"NoSuchType"}},
			code:    diagnostic.CodeInvalidMember,
			message: "NoSuchType",
		},
		{
			name:    "member is a value",
			spec:    manifest.RecordSpec{Type: "store.Order", Members: []string{"StatusPaid"}},
			code:    diagnostic.CodeInvalidMember,
			message: "is not a type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := resolve(t, graph, DefaultConfig(), tt.spec)

			found := plan.Diagnostics.ByCode(tt.code)
			require.NotEmpty(t, found, plan.Diagnostics.All())
			assert.Contains(t, found[0].Message, tt.message)
			assert.Equal(t, tt.spec.Type, found[0].Record)
			assert.True(t, plan.Diagnostics.HasErrors())
			assert.Empty(t, plan.Records)
		})
	}
}

func TestResolver_OffsetMismatch(t *testing.T) {
	// Customer is 56 bytes: IsActive@0 ID@8 Tier@16 Email@24 Address@40 verified@48
	plan := resolve(t, loadStore(t), DefaultConfig(), manifest.RecordSpec{
		Type:    "store.Customer",
		Members: []string{"bool", "int64", "uint8", "uint8", "string", "*string"},
	})

	require.True(t, plan.Diagnostics.HasErrors())
	assert.Empty(t, plan.Records)

	offsets := plan.Diagnostics.ByCode(diagnostic.CodeOffsetMismatch)
	require.NotEmpty(t, offsets, plan.Diagnostics.All())
	assert.Equal(t, "record Customer field Email is at 24, member 3 describes 17", offsets[0].Message)
	assert.Equal(t, "Customer.#3", offsets[0].FieldPath)
}

func TestResolver_NotFoundSuggestions(t *testing.T) {
	graph := loadStore(t)

	plan := resolve(t, graph, DefaultConfig(), manifest.RecordSpec{Type: "store.Ordr"})
	found := plan.Diagnostics.ByCode(diagnostic.CodeRecordNotFound)
	require.Len(t, found, 1)
	assert.Equal(t, "store.Order", found[0].Suggestions[0])

	plan = resolve(t, graph, DefaultConfig(), manifest.RecordSpec{Type: "Custmer"})
	found = plan.Diagnostics.ByCode(diagnostic.CodeRecordNotFound)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Suggestions, "Customer")
	assert.NotContains(t, found[0].Suggestions, "OrderStatus", "only structs are suggested")
}

func TestResolver_FlatView(t *testing.T) {
	plan := resolve(t, loadStore(t), DefaultConfig(), manifest.RecordSpec{
		Type:    "store.Span",
		Members: []string{"int32", "int32"},
	})
	require.True(t, plan.Diagnostics.IsValid(), plan.Diagnostics.All())
	require.Len(t, plan.Records, 1)

	infos := plan.Diagnostics.ByCode(diagnostic.CodeMemberCountMismatch)
	require.Len(t, infos, 1)
	assert.Equal(t, diagnostic.DiagnosticInfo, infos[0].Severity)

	rp := plan.Records[0]
	assert.True(t, rp.IsFlatView())
	assert.Nil(t, rp.Members[1].Field)
	assert.Equal(t, uintptr(4), rp.Members[1].Offset)
	assert.False(t, rp.Members[0].Selectable(false))
}

func TestResolver_BlankField(t *testing.T) {
	plan := resolve(t, loadStore(t), DefaultConfig(), manifest.RecordSpec{Type: "store.Audit"})
	require.True(t, plan.Diagnostics.IsValid(), plan.Diagnostics.All())
	require.Len(t, plan.Records, 1)

	blank := plan.Diagnostics.ByCode(diagnostic.CodeBlankField)
	require.Len(t, blank, 1)
	assert.Equal(t, "Audit._", blank[0].FieldPath)

	rp := plan.Records[0]
	assert.True(t, rp.Members[0].Selectable(false), "embedded Order is selectable")
	assert.False(t, rp.Members[1].Selectable(false))
	assert.Equal(t, uintptr(96), rp.Members[2].Offset)
}

func TestResolver_ExternalOutput(t *testing.T) {
	graph := loadStore(t)
	dir := t.TempDir()

	m := &manifest.Manifest{
		Version: manifest.CurrentVersion,
		Dir:     dir,
		Records: []manifest.RecordSpec{{Type: "store.Customer", Output: "customer_views"}},
	}

	plan, err := NewResolver(slogt.New(t), graph, m, DefaultConfig()).Resolve(t.Context())
	require.NoError(t, err)
	require.Len(t, plan.Records, 1)

	rp := plan.Records[0]
	assert.True(t, rp.External)
	assert.Equal(t, filepath.Join(dir, "customer_views"), rp.OutputDir)
	assert.Equal(t, "customer_views", rp.OutputPackage)

	unexported := plan.Diagnostics.ByCode(diagnostic.CodeUnexportedField)
	require.Len(t, unexported, 1)
	assert.Equal(t, "Customer.verified", unexported[0].FieldPath)

	assert.True(t, rp.Members[1].Selectable(true))
	assert.False(t, rp.Members[5].Selectable(true))
	assert.True(t, rp.Members[5].Selectable(false))
}

func TestResolver_OutputIntoOwnPackage(t *testing.T) {
	graph := loadStore(t)

	m := &manifest.Manifest{
		Version: manifest.CurrentVersion,
		Records: []manifest.RecordSpec{{Type: "store.Customer", Output: graph.Packages[storePkg].Dir}},
	}

	plan, err := NewResolver(slogt.New(t), graph, m, DefaultConfig()).Resolve(t.Context())
	require.NoError(t, err)
	require.Len(t, plan.Records, 1)
	assert.False(t, plan.Records[0].External)
	assert.Empty(t, plan.Diagnostics.ByCode(diagnostic.CodeUnexportedField))
}

func TestResolver_EmptyRecord(t *testing.T) {
	plan := resolve(t, loadStore(t), DefaultConfig(), manifest.RecordSpec{Type: "store.Marker"})
	require.True(t, plan.Diagnostics.IsValid(), plan.Diagnostics.All())
	require.Len(t, plan.Records, 1)
	assert.Empty(t, plan.Records[0].Members)
}

func TestResolver_Duplicate(t *testing.T) {
	plan := resolve(t, loadStore(t), DefaultConfig(),
		manifest.RecordSpec{Type: "store.Order"},
		manifest.RecordSpec{Type: "structview/store.Order", Name: "Again"},
	)

	require.Len(t, plan.Records, 1)
	require.Len(t, plan.Diagnostics.ByCode(diagnostic.CodeDuplicateRecord), 1)
}

func TestResolver_WideRecord(t *testing.T) {
	config := DefaultConfig()
	config.WideThreshold = 4

	plan := resolve(t, loadStore(t), config, manifest.RecordSpec{Type: "store.Order"})
	require.Len(t, plan.Records, 1)

	wide := plan.Diagnostics.ByCode(diagnostic.CodeWideRecord)
	require.Len(t, wide, 1)
	assert.Contains(t, wide[0].Message, "6 members")
	assert.Contains(t, wide[0].Message, "4 levels")
}

func TestResolver_StrictMode(t *testing.T) {
	graph := loadStore(t)
	config := DefaultConfig()
	config.StrictMode = true

	m := &manifest.Manifest{
		Version: manifest.CurrentVersion,
		Records: []manifest.RecordSpec{{Type: "store.Audit"}},
	}

	plan, err := NewResolver(slogt.New(t), graph, m, config).Resolve(t.Context())
	require.Error(t, err)
	require.NotNil(t, plan)
}

func TestResolver_Cancelled(t *testing.T) {
	graph := loadStore(t)
	m := &manifest.Manifest{Version: manifest.CurrentVersion, Records: []manifest.RecordSpec{{Type: "store.Order"}}}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewResolver(slogt.New(t), graph, m, DefaultConfig()).Resolve(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolver_MissingInput(t *testing.T) {
	_, err := NewResolver(slogt.New(t), nil, &manifest.Manifest{}, DefaultConfig()).Resolve(t.Context())
	require.Error(t, err)

	_, err = NewResolver(slogt.New(t), loadStore(t), nil, DefaultConfig()).Resolve(t.Context())
	require.Error(t, err)
}

func TestDepthOf(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 3, 64: 7, 65: 8, 1000: 11} {
		assert.Equal(t, want, depthOf(n), "n=%d", n)
	}
}

func TestToSnake(t *testing.T) {
	for in, want := range map[string]string{
		"Order":      "order",
		"OrderItem":  "order_item",
		"HTTPHeader": "http_header",
		"Wide64":     "wide64",
		"A":          "a",
		"userID":     "user_id",
	} {
		assert.Equal(t, want, toSnake(in), in)
	}
}

func TestPackageNameFor(t *testing.T) {
	assert.Equal(t, "views", packageNameFor("views"))
	assert.Equal(t, "customerviews", packageNameFor("customer-views"))
	assert.Equal(t, "v2", packageNameFor("v2"))
	assert.Equal(t, "views", packageNameFor("123"))
}
