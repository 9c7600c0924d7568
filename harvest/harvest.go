// harvest - run the day's raw logs for a mooring through the per-instrument parsers.
//
// End-user options:
//
//  -platform code
//    Mooring code, eg ce02shsm.  Required.  Case-insensitive.
//
//  -deployment code
//    Deployment code, eg D00004.  Required.  Case-insensitive.
//
//  -date date
//    The day to harvest, yyyy-mm-dd or Nd (days ago) or Nw (weeks ago).  The cron trigger
//    passes 1d, the default.
//
//  -raw-root directory
//  -parsed-root directory
//    Roots of the raw and parsed trees; default from ~/.cgharvest, then builtin.
//
//  -moorings file
//    JSON file with replacement mooring dispatch tables.
//
//  -parser-command program
//    Interpreter for the parser modules, default python.
//
//  -n
//    Print the parser commands without running them.
//
//  -v
//    Print verbose diagnostics to stderr.
//
// The `harvest` verb walks the platform's dispatch table in cable-topology order (power system,
// buoy loggers, NSIF loggers, MFN loggers) and invokes the parser for every instrument whose raw
// file exists.  A missing raw file is a skip, not an error; parser failures are collected and
// reported together after the whole table has been walked.
//
// The `harvest-one` verb dispatches a single instrument, identified by its filename tag (and,
// for the supervisor logs, its logger), optionally for one explicit raw file.

package harvest

import (
	"flag"
	"fmt"

	"cgharvest/runner"
	"cgharvest/status"
	"cgharvest/util"
)

func Harvest(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" harvest", flag.ExitOnError)
	so := util.AddStandardOptions(opts)
	opts.Parse(args)

	p, deployment, day, err := so.Rectify()
	if err != nil {
		return err
	}

	r := so.NewRunner()
	results := r.HarvestDay(p, deployment, day)
	logResults(results)
	return runner.Summarize(status.Default(),
		fmt.Sprintf("harvest %s %s %s", p.Name, deployment, day), results)
}

func HarvestOne(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" harvest-one", flag.ExitOnError)
	so := util.AddStandardOptions(opts)
	var instrument, logger, file string
	opts.StringVar(&instrument, "instrument", "",
		"Instrument filename `tag`, eg phsen1 (required)")
	opts.StringVar(&logger, "logger", "",
		"Logger name, eg dcl26; required only when the tag repeats across loggers")
	opts.StringVar(&file, "file", "",
		"Explicit raw file `name`; the dated name is derived from -date when absent")
	opts.Parse(args)

	p, deployment, day, err := so.Rectify()
	if err != nil {
		return err
	}
	in, err := util.FindInstrument(p, logger, instrument)
	if err != nil {
		return err
	}

	r := so.NewRunner()
	var results []runner.Result
	if file != "" {
		results = []runner.Result{r.HarvestFile(p, deployment, in, file)}
	} else {
		results = r.HarvestInstrument(p, deployment, in, day)
	}
	logResults(results)
	return runner.Summarize(status.Default(),
		fmt.Sprintf("harvest-one %s %s %s", p.Name, deployment, in.Tag), results)
}

func logResults(results []runner.Result) {
	log := status.Default()
	for _, res := range results {
		log.Infof("%s (%s): %s %s", res.Tag, res.DCL, res.Outcome, res.Input)
	}
}
