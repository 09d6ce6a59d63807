package main

import (
	"context"
	"fmt"
	"log/slog"

	"structview/internal/gen"
)

func runGen(ctx context.Context, o options, manifestPath, outDir string, dryRun bool) error {
	rep, err := newReporter(o.stdout, o.color)
	if err != nil {
		return err
	}

	logger := o.logger()

	p, diags, err := resolveManifest(ctx, o, logger, manifestPath)
	if err != nil {
		return err
	}

	rep.diagnostics(diags)

	if diags.HasErrors() {
		rep.failed(len(diags.Errors))
		return errDiagnostics
	}

	files, err := gen.NewGenerator(logger, gen.DefaultGeneratorConfig()).Generate(ctx, p)
	if err != nil {
		return err
	}

	if dryRun {
		for _, f := range files {
			fmt.Fprintf(o.stdout, "// === %s ===\n%s\n", f.Path(), f.Content)
		}

		return nil
	}

	written, err := gen.WriteFiles(files, outDir)
	if err != nil {
		return err
	}

	for _, path := range written {
		logger.Info("wrote", slog.String("file", path))
	}

	rep.okf("%d files generated", len(written))

	return nil
}
