// Command stops2control derives an OSC control surface layout from an
// Aeolus instrument definition.
//
// The instrument directory holds the "definition" file; rank files are
// resolved relative to its parent. The layout is written to stdout.
//
// Usage:
//
//	stops2control [flags] <instrument-dir>
//
// Flags:
//
//	-format string   Output format (json, yaml) (default "json")
//	-preview         Render the layout to the terminal instead
//	-dump            Print the parsed instrument as YAML instead
//	-stops           List every button with its address and rank instead
//
// Examples:
//
//	# Layout for the stock instrument
//	stops2control stops/Aeolus > aeolus.json
//
//	# Check what the surface looks like
//	stops2control -preview stops/Aeolus
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aeolus-osc/aeolus-go/pkg/definition"
	"github.com/aeolus-osc/aeolus-go/pkg/layout"
	"github.com/aeolus-osc/aeolus-go/pkg/route"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stops2control", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, `stops2control - Derive an OSC control layout from an Aeolus instrument

Usage:
  stops2control [flags] <instrument-dir>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "json", "Output format (json, yaml)")
	preview := fs.Bool("preview", false, "Render the layout to the terminal instead")
	dump := fs.Bool("dump", false, "Print the parsed instrument as YAML instead")
	stops := fs.Bool("stops", false, "List every button with its address and rank instead")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: instrument directory required")
		fs.Usage()
		return 2
	}

	f, err := layout.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	inst, err := definition.ParseDir(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Buffer so that a failure leaves stdout empty.
	var buf bytes.Buffer
	switch {
	case *dump:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(inst)
		if err == nil {
			err = enc.Close()
		}
	case *stops:
		listStops(&buf, inst)
	case *preview:
		buf.WriteString(layout.Preview(layout.Derive(inst)))
		buf.WriteByte('\n')
	default:
		err = layout.Encode(&buf, layout.Derive(inst), f)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := buf.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// listStops prints one line per button. Stops show the division and rank
// file they sound.
func listStops(w io.Writer, inst *definition.Instrument) {
	fmt.Fprintf(w, "%-22s %-8s %-24s %s\n", "ADDRESS", "KIND", "LABEL", "RANK")
	for _, g := range inst.Groups {
		for _, b := range g.Buttons {
			rank := "-"
			if r := inst.Rank(b); r != nil {
				rank = fmt.Sprintf("%s/%d %s", inst.Divisions[b.Division-1].Label, r.Index, r.File)
			}
			fmt.Fprintf(w, "%-22s %-8s %-24s %s\n",
				route.ButtonAddress(g.Index, b.Index), b.Kind, layout.DisplayText(b.Label), rank)
		}
	}
	fmt.Fprintf(w, "\n%d buttons in %d groups\n", inst.ButtonCount(), len(inst.Groups))
}
