package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"structview/internal/plan"
)

// DefaultLayoutImport is the import path of the runtime layout package.
const DefaultLayoutImport = "structview/layout"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// LayoutImport is the import path generated code uses for the layout package.
	LayoutImport string
	// Parallelism bounds how many records render at once.
	Parallelism int
	// WriteUnformatted writes a .unformatted.go sidecar when formatting fails.
	WriteUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		LayoutImport:     DefaultLayoutImport,
		Parallelism:      runtime.GOMAXPROCS(0),
		WriteUnformatted: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	logger *slog.Logger
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(logger *slog.Logger, config GeneratorConfig) *Generator {
	if config.LayoutImport == "" {
		config.LayoutImport = DefaultLayoutImport
	}

	if config.Parallelism <= 0 {
		config.Parallelism = 1
	}

	return &Generator{logger: logger, config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "order_fields.go").
	Filename string
	// Record is the record the file was generated for.
	Record string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns Dir joined with Filename.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders one file per planned record. Files come back in plan order.
func (g *Generator) Generate(ctx context.Context, p *plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, len(p.Records))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Parallelism)

	for i := range p.Records {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rp := &p.Records[i]

			file, err := g.generateRecord(rp)
			if err != nil {
				return fmt.Errorf("generating %s: %w", rp.Type.ID, err)
			}

			g.logger.Debug("generated record",
				slog.String("record", rp.Type.ID.String()),
				slog.String("file", file.Path()),
				slog.Int("bytes", len(file.Content)))

			files[i] = *file

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

// generateRecord generates the field view file of a single record.
func (g *Generator) generateRecord(rp *plan.RecordPlan) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(rp)
	if err != nil {
		return nil, err
	}

	file := &GeneratedFile{
		Dir:      rp.OutputDir,
		Filename: rp.FileName(),
		Record:   rp.Type.ID.String(),
	}

	var buf bytes.Buffer
	if err := recordTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.WriteUnformatted {
			if werr := writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes()); werr != nil {
				g.logger.Warn("could not write unformatted sidecar", slog.String("error", werr.Error()))
			}
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// buildTemplateData constructs the template data for a record.
func (g *Generator) buildTemplateData(rp *plan.RecordPlan) (*templateData, error) {
	selfPath := rp.Type.ID.PkgPath
	if rp.External {
		selfPath = rp.OutputPkgPath
	}

	imports := newImportSet(selfPath, "r", "x")
	imports.add("reflect", "reflect")
	imports.add("unsafe", "unsafe")

	data := &templateData{
		Header:      Header,
		PackageName: rp.OutputPackage,
		Identifier:  rp.Identifier,
		Layout:      imports.add(g.config.LayoutImport, ""),
		Size:        rp.Type.Size,
		Align:       rp.Type.Align,
		ReadOnly:    rp.ReadOnly,
		Record:      rp.Name(),
	}

	if rp.External {
		data.Record = imports.add(rp.Type.ID.PkgPath, rp.Package.Name) + "." + rp.Name()
	}

	for i := range rp.Type.Fields {
		f := &rp.Type.Fields[i]
		if f.IsBlank() || (rp.External && !f.Exported) {
			continue
		}

		data.Offsets = append(data.Offsets, offsetAssertion{Field: f.Name, Offset: f.Offset})
	}

	for i := range rp.Members {
		m := &rp.Members[i]
		typ := imports.typeString(m.Type)

		md := memberData{Index: m.Index, Type: typ}

		if m.Field != nil {
			md.Field = m.Field.Name
		}

		if m.Selectable(rp.External) {
			md.Access = "&r." + m.Field.Name
			md.Value = "r." + m.Field.Name
		} else {
			md.Access = fmt.Sprintf("(*%s)(unsafe.Add(unsafe.Pointer(r), %d))", typ, m.Offset)
			md.Value = "*" + md.Access
		}

		data.Members = append(data.Members, md)
	}

	if err := imports.err(); err != nil {
		return nil, err
	}

	data.Imports = imports.sorted()

	return data, nil
}
