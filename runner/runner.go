// Dispatch engine for the harvest and process verbs.
//
// Every instrument invocation is independent: a parser failure is recorded in the instrument's
// Result and the traversal continues.  The master verbs join the failures into one error after
// the full batch has run.

package runner

import (
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strconv"
	"strings"

	"cgharvest/calib"
	"cgharvest/config"
	"cgharvest/filesys"
	"cgharvest/mooring"
	"cgharvest/paths"
	"cgharvest/status"
)

type Outcome int

const (
	// The parser or processor ran and exited zero.
	Done Outcome = iota

	// Input file absent; normal when the instrument logged nothing that day.
	SkippedMissing

	// Output already exists and the instrument's skip policy is on.
	SkippedExists

	// Zero-byte raw file excluded from dispatch.
	SkippedEmpty

	// Parser/processor error or calibration fetch failure; see Result.Err.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case SkippedMissing:
		return "skipped (no input)"
	case SkippedExists:
		return "skipped (output exists)"
	case SkippedEmpty:
		return "skipped (empty input)"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type Result struct {
	Tag     string
	DCL     string
	Input   string
	Output  string
	Outcome Outcome
	Err     error
}

type Runner struct {
	Settings *config.Settings

	// Calibration cache, required by the process operations.
	Calib *calib.Cache

	// Subprocess function returning (stdout, stderr, error); invoke runs os/exec when nil.
	// Tests install a recorder here.
	Exec func(program string, args []string) (string, string, error)

	// Print the commands instead of running them; no directories are created and no
	// calibration files are fetched.
	DryRun bool

	Log status.Logger
}

func (r *Runner) log() status.Logger {
	if r.Log != nil {
		return r.Log
	}
	return status.Default()
}

// HarvestDay dispatches every instrument on the platform for the given YYYYMMDD day, in table
// order.

func (r *Runner) HarvestDay(p *mooring.Platform, deployment, day string) []Result {
	results := []Result{}
	for i := range p.Instruments {
		results = append(results, r.HarvestInstrument(p, deployment, &p.Instruments[i], day)...)
	}
	return results
}

// HarvestInstrument dispatches one instrument for the day.  For glob-named instruments this can
// be several raw files; zero-byte candidates are excluded and reported.

func (r *Runner) HarvestInstrument(
	p *mooring.Platform,
	deployment string,
	in *mooring.Instrument,
	day string,
) []Result {
	if !in.Glob {
		return []Result{r.HarvestFile(p, deployment, in, paths.RawName(day, in))}
	}

	dir := paths.RawDir(r.Settings.RawRoot, p.Name, deployment, in)
	pattern := paths.RawGlob(day, in)
	files, empty, err := filesys.EnumerateDayFiles(dir, pattern)
	if err != nil {
		return []Result{{
			Tag: in.Tag, DCL: in.DCL, Input: path.Join(dir, pattern),
			Outcome: Failed, Err: err,
		}}
	}
	results := []Result{}
	for _, name := range empty {
		results = append(results, Result{
			Tag: in.Tag, DCL: in.DCL, Input: path.Join(dir, name),
			Outcome: SkippedEmpty,
		})
	}
	if len(files) == 0 && len(empty) == 0 {
		return []Result{{
			Tag: in.Tag, DCL: in.DCL, Input: path.Join(dir, pattern),
			Outcome: SkippedMissing,
		}}
	}
	for _, name := range files {
		results = append(results, r.HarvestFile(p, deployment, in, name))
	}
	return results
}

// HarvestFile parses one raw file.  A missing input is a skip, not an error.

func (r *Runner) HarvestFile(
	p *mooring.Platform,
	deployment string,
	in *mooring.Instrument,
	rawName string,
) Result {
	res := Result{Tag: in.Tag, DCL: in.DCL}
	res.Input = paths.RawFile(r.Settings.RawRoot, p.Name, deployment, rawName, in)
	res.Output = paths.ParsedFile(r.Settings.ParsedRoot, p.Name, deployment, rawName, in)

	if !filesys.IsFile(res.Input) {
		res.Outcome = SkippedMissing
		return res
	}
	if in.SkipIfParsed && filesys.IsFile(res.Output) {
		res.Outcome = SkippedExists
		return res
	}

	args := []string{
		"-m", r.Settings.ParserPackage + "." + in.Parser,
		"-i", res.Input,
		"-o", res.Output,
	}
	if in.Switch > 0 {
		args = append(args, "-s", strconv.Itoa(in.Switch))
	}
	res.Outcome, res.Err = r.invoke(path.Dir(res.Output), args)
	return res
}

// ProcessDay dispatches the processing step for every instrument on the platform that has one,
// consuming the day's parsed artifacts.

func (r *Runner) ProcessDay(p *mooring.Platform, deployment, day string) []Result {
	results := []Result{}
	for i := range p.Instruments {
		if p.Instruments[i].Processor == "" {
			continue
		}
		results = append(results, r.ProcessInstrument(p, deployment, &p.Instruments[i], day)...)
	}
	return results
}

// ProcessInstrument dispatches the processing step of one instrument for the day, consuming the
// day's parsed artifacts.

func (r *Runner) ProcessInstrument(
	p *mooring.Platform,
	deployment string,
	in *mooring.Instrument,
	day string,
) []Result {
	if !in.Glob {
		return []Result{r.ProcessFile(p, deployment, in, paths.RawName(day, in))}
	}

	dir := paths.ParsedDir(r.Settings.ParsedRoot, p.Name, deployment, in)
	pattern := paths.ParsedGlob(day, in)
	files, _, err := filesys.EnumerateDayFiles(dir, pattern)
	if err != nil {
		return []Result{{
			Tag: in.Tag, DCL: in.DCL, Input: path.Join(dir, pattern),
			Outcome: Failed, Err: err,
		}}
	}
	if len(files) == 0 {
		return []Result{{
			Tag: in.Tag, DCL: in.DCL, Input: path.Join(dir, pattern),
			Outcome: SkippedMissing,
		}}
	}
	results := []Result{}
	for _, name := range files {
		results = append(results, r.ProcessFile(p, deployment, in, paths.RawNameFor(name, in)))
	}
	return results
}

// ProcessFile runs the processing program for one parsed artifact, resolving the calibration
// coefficients file first.

func (r *Runner) ProcessFile(
	p *mooring.Platform,
	deployment string,
	in *mooring.Instrument,
	rawName string,
) Result {
	res := Result{Tag: in.Tag, DCL: in.DCL}
	if in.Processor == "" {
		res.Outcome = Failed
		res.Err = fmt.Errorf("Instrument %s has no processing step", in.Tag)
		return res
	}
	res.Input = paths.ParsedFile(r.Settings.ParsedRoot, p.Name, deployment, rawName, in)
	res.Output = paths.ProcessedFile(r.Settings.ParsedRoot, p.Name, deployment, rawName, in)

	if !filesys.IsFile(res.Input) {
		res.Outcome = SkippedMissing
		return res
	}
	if in.SkipIfParsed && filesys.IsFile(res.Output) {
		res.Outcome = SkippedExists
		return res
	}

	var coeff, url string
	if r.DryRun {
		coeff = path.Join(r.Calib.Dir, in.CalibUID+".csv")
	} else {
		var err error
		coeff, url, _, err = r.Calib.Resolve(in.CalibUID)
		if err != nil {
			res.Outcome = Failed
			res.Err = err
			return res
		}
	}

	args := []string{
		"-m", r.Settings.ProcessPackage + "." + in.Processor,
		"-i", res.Input,
		"-o", res.Output,
	}
	if in.Switch > 0 {
		args = append(args, "-s", strconv.Itoa(in.Switch))
	}
	args = append(args, "-c", coeff)
	if url != "" {
		args = append(args, "-u", url)
	}
	res.Outcome, res.Err = r.invoke(path.Dir(res.Output), args)
	return res
}

// invoke creates the output directory and runs the external program, capturing its stderr.
// The parsers write their artifacts themselves, so stdout is of no interest.

func (r *Runner) invoke(outDir string, args []string) (Outcome, error) {
	program := r.Settings.ParserCommand
	if r.DryRun {
		fmt.Printf("%s %v\n", program, args)
		return Done, nil
	}
	r.log().Infof("Running %s %v", program, args)

	if err := filesys.EnsureDir(outDir); err != nil {
		return Failed, err
	}
	var stderr string
	var err error
	if r.Exec != nil {
		_, stderr, err = r.Exec(program, args)
	} else {
		cmd := exec.Command(program, args...)
		var errbuf strings.Builder
		cmd.Stderr = &errbuf
		err = cmd.Run()
		stderr = errbuf.String()
		if err != nil {
			err = fmt.Errorf("While running %s: %w", program, err)
		}
	}
	if err != nil {
		if stderr != "" {
			return Failed, errors.Join(err, fmt.Errorf("With stderr:\n%s", stderr))
		}
		return Failed, err
	}
	if stderr != "" {
		r.log().Warningf("%s: %s", program, stderr)
	}
	return Done, nil
}

// Summarize logs the outcome counts and joins the failures into a single error, nil when the
// whole batch succeeded or was skipped.

func Summarize(log status.Logger, what string, results []Result) error {
	var done, skipped, failed int
	var errs []error
	for _, res := range results {
		switch res.Outcome {
		case Done:
			done++
		case Failed:
			failed++
			errs = append(errs, fmt.Errorf("%s (%s): %w", res.Tag, res.DCL, res.Err))
		default:
			skipped++
		}
	}
	log.Infof("%s: %d done, %d skipped, %d failed", what, done, skipped, failed)
	return errors.Join(errs...)
}
