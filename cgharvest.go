// Superstructure for harvesting and processing mooring instrument logs.
//
// Run `cgharvest help` for help.

package main

import (
	"fmt"
	"os"
	"sort"

	"cgharvest/harvest"
	"cgharvest/plan"
	"cgharvest/process"
)

// v0.1.0 - translation of the per-platform shell harvesters into one dispatcher
const cgharvestVersion = "0.1.0"

type command struct {
	help    string
	handler func(arg0 string, args []string) error
}

var commandSummary = "<verb> <option> ..."

var commands = map[string]command{
	"harvest": command{
		"Parse the day's raw instrument logs for a platform deployment",
		harvest.Harvest,
	},
	"harvest-one": command{
		"Parse the day's raw logs for a single instrument",
		harvest.HarvestOne,
	},
	"process": command{
		"Apply calibration and processing to the day's parsed artifacts",
		process.Process,
	},
	"process-one": command{
		"Process the day's parsed artifacts for a single instrument",
		process.ProcessOne,
	},
	"plan": command{
		"Show the instrument dispatch tree for a platform",
		plan.Plan,
	},
	"platforms": command{
		"List the supported platforms",
		plan.Platforms,
	},
}

func main() {
	if len(os.Args) < 2 {
		usage(1)
	}
	switch os.Args[1] {
	case "help":
		usage(0)
	case "version":
		fmt.Printf("cgharvest version(%s)\n", cgharvestVersion)
	default:
		entry, found := commands[os.Args[1]]
		if !found {
			usage(1)
		}
		err := entry.handler(os.Args[0], os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "CGHARVEST FAILED\n%v\n", err)
			os.Exit(1)
		}
	}
}

func usage(code int) {
	out := os.Stdout
	if code != 0 {
		out = os.Stderr
	}
	fmt.Fprintf(out, "Usage of %s:\n\n  %s %s\n\n", os.Args[0], os.Args[0], commandSummary)
	fmt.Fprintf(out, "where <verb> is one of\n\n")
	entries := make(sort.StringSlice, 0)
	for name, command := range commands {
		entries = append(entries, "  "+name+"\n    "+command.help)
	}
	sort.Sort(entries)
	for _, e := range entries {
		fmt.Fprintln(out, e)
	}
	fmt.Fprintln(out, "\nAll verbs accept -h to print verb-specific help.")
	fmt.Fprintln(out, "Defaults for path roots and programs come from ~/.cgharvest.")
	os.Exit(code)
}
