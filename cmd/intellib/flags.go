package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
)

const (
	actionIssued    = "issued"
	actionDeadlines = "deadlines"
	actionFine      = "fine"
	actionIssue     = "issue"
	actionReturn    = "return"
)

var knownActions = []string{actionIssued, actionDeadlines, actionFine, actionIssue, actionReturn}

var (
	ErrUnknownAction      = errors.New("unknown action")
	ErrConflictingModes   = errors.New("-action, -serve, and -migrate are mutually exclusive")
	ErrUnexpectedArgument = errors.New("unexpected argument")
)

// cliFlags holds the command line flags; config file and environment hold everything else.
type cliFlags struct {
	ConfigPath           string
	Action               string
	EnrollmentNo         string
	BookID               string
	Serve                string
	Migrate              bool
	ObservabilityEnabled bool
}

func parseFlags(args []string, output io.Writer) (cliFlags, error) {
	var f cliFlags

	fs := flag.NewFlagSet("intellib", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&f.ConfigPath, "config", "", "Path to a YAML config file (default: ./config/config.yaml or ./config.yaml)")
	fs.StringVar(&f.Action, "action", "", "One-shot action: issued, deadlines, fine, issue, return")
	fs.StringVar(&f.EnrollmentNo, "enrollment", "", "Enrollment number of the student")
	fs.StringVar(&f.BookID, "book", "", "Book ID for issue and return (default: scanned barcode)")
	fs.StringVar(&f.Serve, "serve", "", "Start the HTTP front-end on this address, e.g. :8080")
	fs.BoolVar(&f.Migrate, "migrate", false, "Apply the schema migrations and exit")
	fs.BoolVar(&f.ObservabilityEnabled, "observability-enabled", false, "Enable OpenTelemetry observability")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}

	if fs.NArg() > 0 {
		return cliFlags{}, fmt.Errorf("%w: %s", ErrUnexpectedArgument, fs.Arg(0))
	}

	if f.Action != "" && !slices.Contains(knownActions, f.Action) {
		return cliFlags{}, fmt.Errorf("%w: %s", ErrUnknownAction, f.Action)
	}

	modes := 0
	for _, set := range []bool{f.Action != "", f.Serve != "", f.Migrate} {
		if set {
			modes++
		}
	}

	if modes > 1 {
		return cliFlags{}, ErrConflictingModes
	}

	return f, nil
}
