// Dispatch tables for the moored platforms.
//
// A platform is a physical mooring variant carrying a fixed set of instruments distributed over
// the buoy, the near-surface instrument frame (NSIF) and, on some variants, the multi-function
// node (MFN) on the seafloor.  Each instrument's raw logs are captured by a data-concentrator
// logger (DCL) or power/communications module (CPM) and written under that logger's directory in
// the raw tree.
//
// The table for a platform lists its instruments in the fixed traversal order the master verbs
// use: power system first, then buoy loggers, then NSIF loggers, then MFN loggers.  The builtin
// tables can be replaced wholesale from a JSON file, see ReadTablesFrom.

package mooring

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

type Frame string

const (
	FrameBuoy Frame = "buoy"
	FrameNsif Frame = "nsif"
	FrameMfn  Frame = "mfn"
)

type Instrument struct {
	// Output directory name under the frame directory, eg "phsen".
	Name string `json:"name"`

	// Mounting location, determines the output frame directory.
	Frame Frame `json:"frame"`

	// Logger subdirectory under cg_data, eg "dcl26", "cpm1", "pwrsys".
	DCL string `json:"dcl"`

	// Instrument subdirectory under the logger directory, eg "phsen1".  Empty when the logs sit
	// directly in the logger directory (the power system does this).
	RawDir string `json:"raw_dir,omitempty"`

	// Filename token, eg "phsen1" in 20161012.phsen1.log.
	Tag string `json:"tag"`

	// Parser module base name, eg "parse_phsen".
	Parser string `json:"parser"`

	// Processing module base name, eg "proc_phsen".  Empty for instruments that have no
	// processing step.
	Processor string `json:"processor,omitempty"`

	// Vendor asset UID keying the calibration coefficients file.  Required when Processor is set.
	CalibUID string `json:"calib_uid,omitempty"`

	// Parsed artifact extension, "json" or "mat".
	Ext string `json:"ext"`

	// Parser switch, forwarded as -s when positive.
	Switch int `json:"switch,omitempty"`

	// True for instruments whose raw files embed a timestamp in the name and must be globbed by
	// day rather than opened by the dated name.
	Glob bool `json:"glob,omitempty"`

	// True to skip parsing when the parsed artifact already exists.
	SkipIfParsed bool `json:"skip_if_parsed,omitempty"`
}

type Platform struct {
	// Canonical lower-case mooring code, eg "ce02shsm".
	Name string `json:"name"`

	// Mooring class, "csm" or "issm".
	Class string `json:"class"`

	// Instruments in dispatch order.
	Instruments []Instrument `json:"instruments"`
}

// HasMfn reports whether the variant carries a seafloor frame.
func (p *Platform) HasMfn() bool {
	for i := range p.Instruments {
		if p.Instruments[i].Frame == FrameMfn {
			return true
		}
	}
	return false
}

// FindInstrument locates an instrument by its filename tag, eg "phsen1".  Tags are unique per
// platform except for the supervisor logs, which repeat per logger; use FindInstrumentAt to
// disambiguate those.
func (p *Platform) FindInstrument(tag string) (*Instrument, bool) {
	for i := range p.Instruments {
		if p.Instruments[i].Tag == tag {
			return &p.Instruments[i], true
		}
	}
	return nil, false
}

// FindInstrumentAt locates an instrument by logger and tag.
func (p *Platform) FindInstrumentAt(dcl, tag string) (*Instrument, bool) {
	for i := range p.Instruments {
		if p.Instruments[i].DCL == dcl && p.Instruments[i].Tag == tag {
			return &p.Instruments[i], true
		}
	}
	return nil, false
}

// Tables maps canonical platform name to its dispatch table.
type Tables map[string]*Platform

// MT: Constant after initialization; immutable.
var builtin Tables = builtinTables()

// Lookup resolves a platform name (case-insensitively) in the given tables, or in the builtin
// tables when tables is nil.  An unknown platform is an error, not a no-op.
func Lookup(tables Tables, name string) (*Platform, error) {
	if tables == nil {
		tables = builtin
	}
	p, found := tables[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("Unknown platform %s, known platforms are %s",
			name, strings.Join(Names(tables), " "))
	}
	return p, nil
}

// Names returns the sorted platform names of the given tables, or of the builtin tables when
// tables is nil.
func Names(tables Tables) []string {
	if tables == nil {
		tables = builtin
	}
	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReadTables loads replacement dispatch tables from a JSON file.
func ReadTables(filename string) (Tables, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTablesFrom(f)
}

// ReadTablesFrom loads and validates dispatch tables from JSON: an array of Platform objects.

func ReadTablesFrom(input io.Reader) (Tables, error) {
	bytes, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}

	var platforms []*Platform
	err = json.Unmarshal(bytes, &platforms)
	if err != nil {
		return nil, fmt.Errorf("While unmarshaling mooring tables: %w", err)
	}

	tables := make(Tables)
	for _, p := range platforms {
		if err := validatePlatform(p); err != nil {
			return nil, err
		}
		name := strings.ToLower(p.Name)
		if _, dup := tables[name]; dup {
			return nil, fmt.Errorf("Duplicate platform %s", name)
		}
		p.Name = name
		tables[name] = p
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("Empty mooring tables")
	}
	return tables, nil
}

func validatePlatform(p *Platform) error {
	if p.Name == "" {
		return fmt.Errorf("Platform with no name")
	}
	if p.Class != "csm" && p.Class != "issm" {
		return fmt.Errorf("Platform %s: bad class %q", p.Name, p.Class)
	}
	if len(p.Instruments) == 0 {
		return fmt.Errorf("Platform %s: no instruments", p.Name)
	}
	for i := range p.Instruments {
		in := &p.Instruments[i]
		switch {
		case in.Name == "" || in.Tag == "" || in.DCL == "" || in.Parser == "":
			return fmt.Errorf("Platform %s: instrument %d incomplete", p.Name, i)
		case in.Frame != FrameBuoy && in.Frame != FrameNsif && in.Frame != FrameMfn:
			return fmt.Errorf("Platform %s: instrument %s: bad frame %q", p.Name, in.Tag, in.Frame)
		case in.Ext != "json" && in.Ext != "mat":
			return fmt.Errorf("Platform %s: instrument %s: bad extension %q", p.Name, in.Tag, in.Ext)
		case in.Processor != "" && in.CalibUID == "":
			return fmt.Errorf("Platform %s: instrument %s: processor without calibration UID",
				p.Name, in.Tag)
		}
	}
	return nil
}
