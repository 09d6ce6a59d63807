package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"structview/internal/diagnostic"
)

// reporter prints diagnostics and summaries, colored when asked to.
type reporter struct {
	w         io.Writer
	errColor  *color.Color
	warnColor *color.Color
	infoColor *color.Color
	okColor   *color.Color
}

func newReporter(w io.Writer, mode string) (*reporter, error) {
	var useColor bool

	switch mode {
	case "on":
		useColor = true
	case "off":
	case "auto", "":
		useColor = isTerminal(w)
	default:
		return nil, fmt.Errorf("invalid --color %q (want auto, on or off)", mode)
	}

	paint := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		return c
	}

	return &reporter{
		w:         w,
		errColor:  paint(color.FgRed, color.Bold),
		warnColor: paint(color.FgYellow, color.Bold),
		infoColor: paint(color.FgBlue),
		okColor:   paint(color.FgGreen, color.Bold),
	}, nil
}

// isTerminal checks whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *reporter) label(s diagnostic.DiagnosticSeverity) string {
	switch s {
	case diagnostic.DiagnosticError:
		return r.errColor.Sprint(s.String())
	case diagnostic.DiagnosticWarning:
		return r.warnColor.Sprint(s.String())
	default:
		return r.infoColor.Sprint(s.String())
	}
}

func (r *reporter) diagnostics(d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		fmt.Fprintf(r.w, "%s: %s\n", r.label(diag.Severity), diag.String())
	}
}

func (r *reporter) failed(n int) {
	fmt.Fprintln(r.w, r.errColor.Sprintf("%d errors", n))
}

func (r *reporter) okf(format string, args ...any) {
	fmt.Fprintln(r.w, r.okColor.Sprintf(format, args...))
}
