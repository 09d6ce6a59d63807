package main

import (
	"context"
	"fmt"
	"log/slog"

	"structview/internal/analyze"
	"structview/internal/diagnostic"
	"structview/internal/manifest"
	"structview/internal/plan"
)

// resolveManifest loads the manifest, analyzes its packages and resolves its records.
// The plan is nil when the manifest itself is invalid; diags holds every finding.
func resolveManifest(ctx context.Context, o options, logger *slog.Logger, path string) (*plan.Plan, diagnostic.Diagnostics, error) {
	m, err := manifest.LoadFile(path)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	diags := manifest.Validate(m)
	if diags.HasErrors() {
		return nil, diags, nil
	}

	config := o.layout
	config.Dir = m.Dir

	analyzer, err := analyze.NewAnalyzer(logger, config)
	if err != nil {
		return nil, diags, err
	}

	logger.Debug("loading packages",
		slog.Any("patterns", m.Packages),
		slog.String("dir", m.Dir),
		slog.String("arch", config.Arch))

	graph, err := analyzer.LoadPackages(ctx, m.Packages...)
	if err != nil {
		return nil, diags, fmt.Errorf("analyzing packages: %w", err)
	}

	p, err := plan.NewResolver(logger, graph, m, plan.DefaultConfig()).Resolve(ctx)
	if err != nil {
		return nil, diags, fmt.Errorf("resolving records: %w", err)
	}

	diags.Merge(p.Diagnostics)

	return p, diags, nil
}

func runCheck(ctx context.Context, o options, manifestPath string) error {
	rep, err := newReporter(o.stdout, o.color)
	if err != nil {
		return err
	}

	p, diags, err := resolveManifest(ctx, o, o.logger(), manifestPath)
	if err != nil {
		return err
	}

	rep.diagnostics(diags)

	if diags.HasErrors() {
		rep.failed(len(diags.Errors))
		return errDiagnostics
	}

	rep.okf("%d records resolved", len(p.Records))

	return nil
}
