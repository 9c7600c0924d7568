// Options parser utilities shared by the verbs.

package util

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"

	"cgharvest/calib"
	"cgharvest/config"
	"cgharvest/mooring"
	"cgharvest/runner"
	"cgharvest/status"
	gut "cgharvest/time"
)

// StandardOptions are the flags every dispatching verb takes: the mooring coordinates, the day,
// the externalized path roots, and the dispatch controls.

type StandardOptions struct {
	Platform   string
	Deployment string
	DateStr    string
	Settings   config.Settings
	Verbose    bool
	DryRun     bool
	Syslog     bool
}

func AddStandardOptions(opts *flag.FlagSet) *StandardOptions {
	so := new(StandardOptions)
	opts.StringVar(&so.Platform, "platform", "",
		"Mooring `code`, eg ce02shsm (required)")
	opts.StringVar(&so.Deployment, "deployment", "",
		"Deployment `code`, eg D00004 (required)")
	opts.StringVar(&so.DateStr, "date", "1d",
		"Day to dispatch, yyyy-mm-dd or Nd (days ago) or Nw (weeks ago)")
	opts.StringVar(&so.Settings.RawRoot, "raw-root", "",
		"Root `directory` of the raw data tree")
	opts.StringVar(&so.Settings.ParsedRoot, "parsed-root", "",
		"Root `directory` of the parsed data tree")
	opts.StringVar(&so.Settings.MooringTables, "moorings", "",
		"JSON `file` with replacement mooring dispatch tables")
	opts.StringVar(&so.Settings.ParserCommand, "parser-command", "",
		"Interpreter for the parser modules [default: python]")
	opts.StringVar(&so.Settings.CalibrationURL, "calibration-url", "",
		"Base `url` of the remote calibration repository")
	opts.StringVar(&so.Settings.CalibrationCache, "calibration-cache", "",
		"Cache `directory` for calibration coefficient files")
	opts.BoolVar(&so.Verbose, "v", false, "Print verbose diagnostics to stderr")
	opts.BoolVar(&so.DryRun, "n", false, "Print the commands without running them")
	opts.BoolVar(&so.Syslog, "syslog", false, "Also log to the system log")
	return so
}

// MT: Constant after initialization; immutable.
var deploymentRe = regexp.MustCompile(`^[A-Z]\d{5}$`)

// Rectify validates the options, canonicalizes the mooring coordinates, and resolves the
// settings against the ini defaults.  It returns the platform table and the YYYYMMDD day stamp.
// The raw root must name an existing directory: a misconfigured root would otherwise make the
// whole platform look like a silent all-skip day.  The parsed root and the calibration cache
// are created on demand, so those are only cleaned and made absolute.

func (so *StandardOptions) Rectify() (p *mooring.Platform, deployment, day string, err error) {
	if so.Verbose {
		status.Default().LowerLevelTo(status.LogLevelInfo)
	}
	if so.Syslog {
		status.Start("cgharvest")
	}
	so.Settings.Resolve()

	var tables mooring.Tables
	if so.Settings.MooringTables != "" {
		tables, err = mooring.ReadTables(so.Settings.MooringTables)
		if err != nil {
			return
		}
	}

	if so.Platform == "" {
		err = fmt.Errorf("-platform is required")
		return
	}
	p, err = mooring.Lookup(tables, so.Platform)
	if err != nil {
		return
	}

	deployment = strings.ToUpper(so.Deployment)
	if !deploymentRe.MatchString(deployment) {
		err = fmt.Errorf("Bad deployment code %q, expected the D00004 form", so.Deployment)
		return
	}

	date, err := gut.ParseRelativeDate(so.DateStr)
	if err != nil {
		return
	}
	day = gut.DayStamp(date)

	so.Settings.RawRoot, err = RequireDirectory(so.Settings.RawRoot, "-raw-root")
	if err != nil {
		return
	}
	so.Settings.ParsedRoot, err = RequireCleanPath(so.Settings.ParsedRoot, "-parsed-root")
	if err != nil {
		return
	}
	so.Settings.CalibrationCache, err = RequireCleanPath(
		so.Settings.CalibrationCache, "-calibration-cache")
	return
}

// NewRunner builds the dispatch engine from the resolved settings.
func (so *StandardOptions) NewRunner() *runner.Runner {
	return &runner.Runner{
		Settings: &so.Settings,
		Calib: &calib.Cache{
			Dir:     so.Settings.CalibrationCache,
			BaseURL: so.Settings.CalibrationURL,
			Log:     status.Default(),
		},
		DryRun: so.DryRun,
		Log:    status.Default(),
	}
}

// FindInstrument resolves an instrument by tag, and by logger when the tag repeats across
// loggers (the supervisor logs do).

func FindInstrument(p *mooring.Platform, logger, tag string) (*mooring.Instrument, error) {
	if tag == "" {
		return nil, fmt.Errorf("-instrument is required")
	}
	if logger != "" {
		if in, found := p.FindInstrumentAt(logger, tag); found {
			return in, nil
		}
		return nil, fmt.Errorf("No instrument %s on logger %s of %s", tag, logger, p.Name)
	}
	if in, found := p.FindInstrument(tag); found {
		return in, nil
	}
	return nil, fmt.Errorf("No instrument %s on %s", tag, p.Name)
}

// RequireDirectory requires a non-empty value that names an existing directory.

func RequireDirectory(optval, optname string) (string, error) {
	if optval == "" {
		return "", fmt.Errorf("Required argument: %s", optname)
	}

	optval = path.Clean(optval)
	info, err := os.DirFS(optval).(fs.StatFS).Stat(".")
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("Bad %s directory %s", optname, optval)
	}

	return optval, nil
}

// RequireCleanPath cleans a required path and makes it absolute.

func RequireCleanPath(optval, optname string) (string, error) {
	if optval == "" {
		return "", fmt.Errorf("%s requires a value", optname)
	}

	optval = path.Clean(optval)
	if path.IsAbs(optval) {
		return optval, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return path.Join(wd, optval), nil
}
