package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/squall/internal/bridge"
	"github.com/dshills/squall/internal/embedded"
	"github.com/dshills/squall/internal/mode"
	"github.com/dshills/squall/internal/protocol"
)

var (
	pathStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// fileReport is the outcome of checking one file.
type fileReport struct {
	path  string
	diags []protocol.Diagnostic
	err   error
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate the embedded code blocks of Markdown files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on warnings as well as errors",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only print files with findings",
			},
		},
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("check: no files given", 2)
			}

			reports := checkFiles(c.Context, paths)
			for _, rep := range reports {
				printReport(rep, c.Bool("quiet"))
			}

			errs, warns := tally(reports)
			if errs > 0 || (c.Bool("strict") && warns > 0) {
				return cli.Exit(fmt.Sprintf("check: %d error(s), %d warning(s)", errs, warns), 1)
			}
			return nil
		},
	}
}

// tally counts the error and warning severity findings across reports.
// A file that could not be checked at all counts as one error.
func tally(reports []fileReport) (errs, warns int) {
	for _, rep := range reports {
		if rep.err != nil {
			errs++
			continue
		}
		for _, d := range rep.diags {
			switch d.Severity {
			case protocol.DiagnosticSeverityError:
				errs++
			case protocol.DiagnosticSeverityWarning:
				warns++
			}
		}
	}
	return errs, warns
}

// checkFiles validates every file concurrently. Each file gets its own
// mode registry and therefore its own unit cache; bridges are
// single-owner and must not be shared across goroutines.
func checkFiles(ctx context.Context, paths []string) []fileReport {
	reports := make([]fileReport, len(paths))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			reports[i] = checkFile(path)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func checkFile(path string) fileReport {
	rep := fileReport{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		rep.err = err
		return rep
	}

	extractor := embedded.New("squall", "lua")
	registry := mode.NewRegistry(
		// Native severities so --strict can tell warnings from errors.
		mode.NewSquallMode(bridge.WithNativeSeverity()),
		mode.NewLuaMode(),
	)
	defer registry.Dispose()

	uri := protocol.FilePathToURI(path)
	for _, sub := range extractor.Extract(uri, string(data), 1) {
		diags, err := registry.Validate(sub)
		if err != nil {
			rep.err = err
			return rep
		}
		rep.diags = append(rep.diags, diags...)
	}
	return rep
}

func printReport(rep fileReport, quiet bool) {
	if rep.err != nil {
		fmt.Printf("%s: %s\n", pathStyle.Render(rep.path), errorStyle.Render(rep.err.Error()))
		return
	}
	if len(rep.diags) == 0 {
		if !quiet {
			fmt.Printf("%s: %s\n", pathStyle.Render(rep.path), okStyle.Render("ok"))
		}
		return
	}

	for _, d := range rep.diags {
		label := severityLabel(d.Severity)
		fmt.Printf("%s:%d:%d: %s: %s\n",
			pathStyle.Render(rep.path),
			d.Range.Start.Line+1,
			d.Range.Start.Character+1,
			label,
			d.Message,
		)
	}
}

func severityLabel(s protocol.DiagnosticSeverity) string {
	switch s {
	case protocol.DiagnosticSeverityError:
		return errorStyle.Render("error")
	case protocol.DiagnosticSeverityWarning:
		return warnStyle.Render("warning")
	case protocol.DiagnosticSeverityHint, protocol.DiagnosticSeverityInformation:
		return infoStyle.Render("note")
	default:
		return "note"
	}
}
