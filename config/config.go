// Runtime settings: hard-coded roots externalized into flags with ini-file defaults.
//
// Precedence is flag > ~/.cgharvest > builtin default.  The ini file has the sections
//
//  [paths]
//  raw-root=/data/raw
//  parsed-root=/data/parsed
//  moorings=$HOME/moorings.json
//
//  [programs]
//  parser-command=python
//  parser-package=cgsn_parsers.parsers
//  process-package=cgsn_parsers.process
//
//  [calibration]
//  base-url=https://.../calibration
//  cache-dir=/data/cal
//
// Values are expanded with os.ExpandEnv when they are applied.

package config

import (
	"errors"
	"io"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"

	"cgharvest/status"
)

type Settings struct {
	RawRoot          string
	ParsedRoot       string
	MooringTables    string
	ParserCommand    string
	ParserPackage    string
	ProcessPackage   string
	CalibrationURL   string
	CalibrationCache string
}

// MT: Constant after initialization
var (
	p     = ini.NewParser()
	store *ini.Store

	pathsSection = p.AddSection("paths")
	rawRoot      = pathsSection.AddString("raw-root")
	parsedRoot   = pathsSection.AddString("parsed-root")
	moorings     = pathsSection.AddString("moorings")

	programsSection = p.AddSection("programs")
	parserCommand   = programsSection.AddString("parser-command")
	parserPackage   = programsSection.AddString("parser-package")
	processPackage  = programsSection.AddString("process-package")

	calibrationSection = p.AddSection("calibration")
	calibrationURL     = calibrationSection.AddString("base-url")
	calibrationCache   = calibrationSection.AddString("cache-dir")
)

func init() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	fn := path.Join(path.Clean(home), ".cgharvest")
	input, err := os.Open(fn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			status.Errorf("Error in trying to open %s: %s", fn, err.Error())
		}
		return
	}
	defer input.Close()
	store, err = p.Parse(input)
	if err != nil {
		status.Errorf("Error in trying to parse %s: %s", fn, err.Error())
	}
}

// ParseDefaults replaces the ini defaults from the given reader; used by tests.
func ParseDefaults(input io.Reader) error {
	s, err := p.Parse(input)
	if err != nil {
		return err
	}
	store = s
	return nil
}

func applyDefault(sp *string, f *ini.Field) bool {
	if *sp != "" || store == nil || !f.Present(store) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(store))
	return true
}

func applyBuiltin(sp *string, value string) {
	if *sp == "" {
		*sp = value
	}
}

// Resolve fills empty settings from the ini defaults and then from the builtin defaults.
func (s *Settings) Resolve() {
	applyDefault(&s.RawRoot, rawRoot)
	applyDefault(&s.ParsedRoot, parsedRoot)
	applyDefault(&s.MooringTables, moorings)
	applyDefault(&s.ParserCommand, parserCommand)
	applyDefault(&s.ParserPackage, parserPackage)
	applyDefault(&s.ProcessPackage, processPackage)
	applyDefault(&s.CalibrationURL, calibrationURL)
	applyDefault(&s.CalibrationCache, calibrationCache)

	applyBuiltin(&s.RawRoot, "/home/ooiuser/data/raw")
	applyBuiltin(&s.ParsedRoot, "/home/ooiuser/data/parsed")
	applyBuiltin(&s.ParserCommand, "python")
	applyBuiltin(&s.ParserPackage, "cgsn_parsers.parsers")
	applyBuiltin(&s.ProcessPackage, "cgsn_parsers.process")
	applyBuiltin(&s.CalibrationURL,
		"https://github.com/ooi-integration/asset-management/raw/master/calibration")
	applyBuiltin(&s.CalibrationCache, "/home/ooiuser/data/cal")
}
