// process - run the day's parsed artifacts through the per-instrument processing programs.
//
// End-user options are those of `harvest`, plus:
//
//  -calibration-url url
//    Base URL of the remote calibration repository.
//
//  -calibration-cache directory
//    Where fetched coefficient files are kept.  A coefficients file is fetched at most once per
//    asset UID and reused by every later run.
//
// Only instruments with a processing step (phsen, pco2w, optaa) are dispatched.  The processing
// program receives the parsed artifact, the .proc output path, and the calibration coefficients
// file; when the coefficients were fetched on this run, the source URL is forwarded too.  A
// failed fetch fails that instrument only.
//
// The `process-one` verb dispatches a single instrument by filename tag.

package process

import (
	"flag"
	"fmt"

	"cgharvest/runner"
	"cgharvest/status"
	"cgharvest/util"
)

func Process(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" process", flag.ExitOnError)
	so := util.AddStandardOptions(opts)
	opts.Parse(args)

	p, deployment, day, err := so.Rectify()
	if err != nil {
		return err
	}

	r := so.NewRunner()
	results := r.ProcessDay(p, deployment, day)
	logResults(results)
	return runner.Summarize(status.Default(),
		fmt.Sprintf("process %s %s %s", p.Name, deployment, day), results)
}

func ProcessOne(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" process-one", flag.ExitOnError)
	so := util.AddStandardOptions(opts)
	var instrument, logger string
	opts.StringVar(&instrument, "instrument", "",
		"Instrument filename `tag`, eg phsen1 (required)")
	opts.StringVar(&logger, "logger", "",
		"Logger name, eg dcl26; required only when the tag repeats across loggers")
	opts.Parse(args)

	p, deployment, day, err := so.Rectify()
	if err != nil {
		return err
	}
	in, err := util.FindInstrument(p, logger, instrument)
	if err != nil {
		return err
	}
	if in.Processor == "" {
		return fmt.Errorf("Instrument %s on %s has no processing step", in.Tag, p.Name)
	}

	r := so.NewRunner()
	results := r.ProcessInstrument(p, deployment, in, day)
	logResults(results)
	return runner.Summarize(status.Default(),
		fmt.Sprintf("process-one %s %s %s", p.Name, deployment, in.Tag), results)
}

func logResults(results []runner.Result) {
	log := status.Default()
	for _, res := range results {
		log.Infof("%s (%s): %s %s", res.Tag, res.DCL, res.Outcome, res.Input)
	}
}
