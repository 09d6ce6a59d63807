package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/urfave/cli/v3"

	"structview/internal/analyze"
)

// errDiagnostics reports a run that printed error diagnostics.
var errDiagnostics = errors.New("resolution reported errors")

const defaultManifest = "structview.yaml"

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "structview",
		Usage:     "Generate typed field views of Go structs",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:  "gen",
				Usage: "Resolve the manifest and write one <record>_fields.go per record",
				Flags: append(commonFlags(),
					manifestFlag(),
					&cli.StringFlag{
						Name:  "out",
						Usage: "write every file into this directory instead of next to its record",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "print generated code instead of writing it",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					return runGen(ctx, optionsFrom(c, stdout, stderr), c.String("manifest"), c.String("out"), c.Bool("dry-run"))
				},
			},
			{
				Name:  "check",
				Usage: "Resolve the manifest and report diagnostics without generating",
				Flags: append(commonFlags(), manifestFlag()),
				Action: func(ctx context.Context, c *cli.Command) error {
					return runCheck(ctx, optionsFrom(c, stdout, stderr), c.String("manifest"))
				},
			},
			{
				Name:      "inspect",
				Usage:     "Print the measured layout of a struct",
				ArgsUsage: "<package pattern> <type>",
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "dump the analyzed layout with go-spew",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return fmt.Errorf("inspect takes a package pattern and a type name, got %d arguments", c.Args().Len())
					}

					return runInspect(ctx, optionsFrom(c, stdout, stderr), c.Args().Get(0), c.Args().Get(1), c.Bool("dump"))
				},
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log debug output",
		},
		&cli.StringFlag{
			Name:  "color",
			Value: "auto",
			Usage: "colorize output (auto|on|off)",
		},
		&cli.StringFlag{
			Name:  "arch",
			Value: runtime.GOARCH,
			Usage: "GOARCH whose layout rules apply",
		},
		&cli.StringFlag{
			Name:  "compiler",
			Value: "gc",
			Usage: "compiler whose layout rules apply (gc|gccgo)",
		},
	}
}

func manifestFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "manifest",
		Aliases: []string{"m"},
		Value:   defaultManifest,
		Usage:   "manifest file (.yaml, .yml or .toml)",
	}
}

// options are the flags every command shares.
type options struct {
	verbose bool
	color   string
	layout  analyze.Config
	stdout  io.Writer
	stderr  io.Writer
}

func optionsFrom(c *cli.Command, stdout, stderr io.Writer) options {
	return options{
		verbose: c.Bool("verbose"),
		color:   c.String("color"),
		layout: analyze.Config{
			Compiler: c.String("compiler"),
			Arch:     c.String("arch"),
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func (o options) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: level}))
}
