// Command aeolus-log is a tool for viewing and analyzing bridge protocol
// log files.
//
// Log files are written by aeolus-osc when run with the -protocol-log flag.
//
// Usage:
//
//	aeolus-log <command> [flags] <file.alog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View only sequencer-side events
//	aeolus-log view -layer seq session.alog
//
//	# Export to CSV
//	aeolus-log export -format csv -o session.csv session.alog
//
//	# Keep only button presses
//	aeolus-log filter -address /aeolus/button -o buttons.alog session.alog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aeolus-osc/aeolus-go/cmd/aeolus-log/commands"
)

const usage = `aeolus-log - Aeolus OSC Protocol Log Analyzer

Usage:
  aeolus-log <command> [flags] <file.alog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "aeolus-log <command> -help" for more information about a command.
`

// command is one subcommand. setup registers its flags and returns the
// function to run on the log file path.
type command struct {
	summary string
	setup   func(fs *flag.FlagSet, stdout io.Writer) func(path string) error
}

var commandTable = map[string]command{
	"view":   {"View log file in human-readable format", setupView},
	"export": {"Export log file to JSON or CSV format", setupExport},
	"filter": {"Filter log file and write to new file", setupFilter},
	"stats":  {"Show statistics about the log file", setupStats},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	name := args[0]
	switch name {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	}
	cmd, ok := commandTable[name]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", name)
		fmt.Fprint(stderr, usage)
		return 1
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "aeolus-log %s - %s\n\nUsage:\n  aeolus-log %s [flags] <file.alog>\n\nFlags:\n",
			name, cmd.summary, name)
		fs.PrintDefaults()
	}
	exec := cmd.setup(fs, stdout)

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: log file path required")
		fs.Usage()
		return 1
	}

	if err := exec(fs.Arg(0)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// eventFlags registers the layer, direction and category filters shared by
// view and filter.
type eventFlags struct {
	layer, direction, category *string
}

func registerEventFlags(fs *flag.FlagSet) eventFlags {
	return eventFlags{
		layer:     fs.String("layer", "", "Filter by layer (osc, session, seq)"),
		direction: fs.String("direction", "", "Filter by direction (in, out)"),
		category:  fs.String("category", "", "Filter by category (message, control, state, error)"),
	}
}

func setupView(fs *flag.FlagSet, stdout io.Writer) func(string) error {
	ef := registerEventFlags(fs)
	return func(path string) error {
		var filter commands.ViewFilter
		if *ef.layer != "" {
			l, err := commands.ParseLayerFlag(*ef.layer)
			if err != nil {
				return err
			}
			filter.Layer = &l
		}
		if *ef.direction != "" {
			d, err := commands.ParseDirectionFlag(*ef.direction)
			if err != nil {
				return err
			}
			filter.Direction = &d
		}
		if *ef.category != "" {
			c, err := commands.ParseCategoryFlag(*ef.category)
			if err != nil {
				return err
			}
			filter.Category = &c
		}
		return commands.RunView(path, filter, stdout)
	}
}

func setupExport(fs *flag.FlagSet, stdout io.Writer) func(string) error {
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	return func(path string) error {
		return commands.RunExport(path, *format, *output, stdout)
	}
}

func setupFilter(fs *flag.FlagSet, stdout io.Writer) func(string) error {
	output := fs.String("o", "", "Output file (required)")
	sessionID := fs.String("session-id", "", "Filter by session ID")
	address := fs.String("address", "", "Filter by OSC address prefix")
	destination := fs.String("destination", "", "Filter by sequencer endpoint (client:port)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	ef := registerEventFlags(fs)

	return func(path string) error {
		if *output == "" {
			return fmt.Errorf("output file (-o) required")
		}
		return commands.RunFilter(path, commands.FilterOptions{
			Output:      *output,
			SessionID:   *sessionID,
			Address:     *address,
			Destination: *destination,
			TimeStart:   *timeStart,
			TimeEnd:     *timeEnd,
			Layer:       *ef.layer,
			Direction:   *ef.direction,
			Category:    *ef.category,
		}, stdout)
	}
}

func setupStats(fs *flag.FlagSet, stdout io.Writer) func(string) error {
	return func(path string) error {
		return commands.RunStats(path, stdout)
	}
}
