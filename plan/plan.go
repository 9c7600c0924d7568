// plan - show what a harvest run would dispatch for a platform.
//
// End-user options:
//
//  -platform code
//    Mooring code.  Required.
//
//  -moorings file
//    JSON file with replacement mooring dispatch tables.
//
// Prints the platform's dispatch table as a tree: frame, then logger, then instrument with its
// parser and policies, in dispatch order.  The `platforms` verb just lists the supported
// platform codes.

package plan

import (
	"flag"
	"fmt"
	"strings"

	"github.com/disiqueira/gotree/v3"

	"cgharvest/mooring"
)

func Plan(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" plan", flag.ExitOnError)
	var platform, moorings string
	opts.StringVar(&platform, "platform", "", "Mooring `code`, eg ce02shsm (required)")
	opts.StringVar(&moorings, "moorings", "",
		"JSON `file` with replacement mooring dispatch tables")
	opts.Parse(args)

	var tables mooring.Tables
	if moorings != "" {
		var err error
		tables, err = mooring.ReadTables(moorings)
		if err != nil {
			return err
		}
	}
	if platform == "" {
		return fmt.Errorf("-platform is required")
	}
	p, err := mooring.Lookup(tables, platform)
	if err != nil {
		return err
	}

	fmt.Print(render(p))
	return nil
}

func render(p *mooring.Platform) string {
	root := gotree.New(fmt.Sprintf("%s (%s)", p.Name, p.Class))
	frames := make(map[mooring.Frame]gotree.Tree)
	loggers := make(map[string]gotree.Tree)
	for i := range p.Instruments {
		in := &p.Instruments[i]
		frame, found := frames[in.Frame]
		if !found {
			frame = root.Add(string(in.Frame))
			frames[in.Frame] = frame
		}
		key := string(in.Frame) + "/" + in.DCL
		logger, found := loggers[key]
		if !found {
			logger = frame.Add(in.DCL)
			loggers[key] = logger
		}
		logger.Add(describe(in))
	}
	return root.Print()
}

func describe(in *mooring.Instrument) string {
	var notes []string
	if in.Glob {
		notes = append(notes, "glob")
	}
	if in.SkipIfParsed {
		notes = append(notes, "skip-if-parsed")
	}
	if in.Processor != "" {
		notes = append(notes, in.Processor)
	}
	s := fmt.Sprintf("%s -> %s/%s.%s [%s", in.Tag, in.Frame, in.Name, in.Ext, in.Parser)
	if len(notes) > 0 {
		s += ", " + strings.Join(notes, ", ")
	}
	return s + "]"
}

func Platforms(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" platforms", flag.ExitOnError)
	var moorings string
	opts.StringVar(&moorings, "moorings", "",
		"JSON `file` with replacement mooring dispatch tables")
	opts.Parse(args)

	var tables mooring.Tables
	if moorings != "" {
		var err error
		tables, err = mooring.ReadTables(moorings)
		if err != nil {
			return err
		}
	}
	for _, name := range mooring.Names(tables) {
		p, _ := mooring.Lookup(tables, name)
		mfn := ""
		if p.HasMfn() {
			mfn = " +mfn"
		}
		fmt.Printf("%s (%s, %d instruments%s)\n", name, p.Class, len(p.Instruments), mfn)
	}
	return nil
}
