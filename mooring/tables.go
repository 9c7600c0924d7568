// Builtin dispatch tables.
//
// These encode the instrument complement of the coastal surface moorings (csm) and inshore
// surface moorings (issm) we operate.  Variant differences that matter to dispatch:
//
//  - ce07shsm and ce09ossm carry an MFN frame, ce02shsm and ce04ossm do not
//  - the MFN ADCP directory name differs (adcpt on the shelf mooring, adcps offshore)
//  - ce01issm carries a second optical-absorption sensor on the MFN, ce06issm does not
//
// Calibration UIDs here are the builtin per-platform constants; deployments with replacement
// sensors supply corrected tables via -moorings.

package mooring

import (
	"fmt"
	"strings"
)

func builtinTables() Tables {
	t := make(Tables)
	for _, p := range []*Platform{
		coastalSurface("ce02shsm", "", false),
		coastalSurface("ce04ossm", "", false),
		coastalSurface("ce07shsm", "adcpt", false),
		coastalSurface("ce09ossm", "adcps", false),
		inshoreSurface("ce01issm", true),
		inshoreSurface("ce06issm", false),
	} {
		t[p.Name] = p
	}
	return t
}

func uid(platform, tag string) string {
	return fmt.Sprintf("CGINS-%s-%s", strings.ToUpper(tag), strings.ToUpper(platform))
}

func superv(dcl string) Instrument {
	parser := "parse_superv_dcl"
	if strings.HasPrefix(dcl, "cpm") {
		parser = "parse_superv_cpm"
	}
	frame := FrameBuoy
	switch dcl {
	case "dcl26", "dcl27", "dcl16", "cpm2":
		frame = FrameNsif
	case "dcl35", "dcl37", "cpm3":
		frame = FrameMfn
	}
	return Instrument{
		Name:   "superv_" + dcl,
		Frame:  frame,
		DCL:    dcl,
		RawDir: "superv",
		Tag:    "superv",
		Parser: parser,
		Ext:    "json",
	}
}

// Traversal order mirrors the cable topology: power system, then buoy loggers, then NSIF, then
// MFN.  The order of the returned slice is the dispatch order.

func coastalSurface(name, mfnAdcp string, dualOptaa bool) *Platform {
	ins := []Instrument{
		// power system
		{Name: "pwrsys", Frame: FrameBuoy, DCL: "pwrsys", Tag: "pwrsys",
			Parser: "parse_pwrsys", Ext: "json"},
		// buoy
		superv("cpm1"),
		superv("dcl11"),
		superv("dcl12"),
		{Name: "gps", Frame: FrameBuoy, DCL: "cpm1", RawDir: "gps", Tag: "gps",
			Parser: "parse_gps", Ext: "json"},
		{Name: "hydgn", Frame: FrameBuoy, DCL: "dcl11", RawDir: "hyd1", Tag: "hyd1",
			Parser: "parse_hydgn", Ext: "json"},
		{Name: "hydgn", Frame: FrameBuoy, DCL: "dcl12", RawDir: "hyd2", Tag: "hyd2",
			Parser: "parse_hydgn", Ext: "json"},
		{Name: "metbk", Frame: FrameBuoy, DCL: "dcl11", RawDir: "metbk", Tag: "metbk",
			Parser: "parse_metbk", Ext: "json"},
		{Name: "mopak", Frame: FrameBuoy, DCL: "dcl11", RawDir: "mopak", Tag: "mopak",
			Parser: "parse_mopak", Ext: "mat", Glob: true},
		{Name: "pco2a", Frame: FrameBuoy, DCL: "dcl12", RawDir: "pco2a", Tag: "pco2a",
			Parser: "parse_pco2a", Ext: "json"},
		{Name: "wavss", Frame: FrameBuoy, DCL: "dcl12", RawDir: "wavss", Tag: "wavss",
			Parser: "parse_wavss", Ext: "json"},
		{Name: "fdchp", Frame: FrameBuoy, DCL: "dcl12", RawDir: "fdchp", Tag: "fdchp",
			Parser: "parse_fdchp", Ext: "json", SkipIfParsed: true},
		// NSIF
		superv("dcl26"),
		superv("dcl27"),
		{Name: "ctdbp", Frame: FrameNsif, DCL: "dcl27", RawDir: "ctdbp1", Tag: "ctdbp1",
			Parser: "parse_ctdbp", Ext: "json", Switch: 1},
		{Name: "dosta", Frame: FrameNsif, DCL: "dcl27", RawDir: "dosta", Tag: "dosta",
			Parser: "parse_dosta", Ext: "json"},
		{Name: "flort", Frame: FrameNsif, DCL: "dcl27", RawDir: "flort", Tag: "flort",
			Parser: "parse_flort", Ext: "json"},
		{Name: "nutnr", Frame: FrameNsif, DCL: "dcl26", RawDir: "nutnr", Tag: "nutnr",
			Parser: "parse_nutnr", Ext: "json"},
		{Name: "optaa", Frame: FrameNsif, DCL: "dcl27", RawDir: "optaa1", Tag: "optaa1",
			Parser: "parse_optaa", Processor: "proc_optaa", CalibUID: uid(name, "optaa1"),
			Ext: "json", Glob: true, SkipIfParsed: true},
		{Name: "phsen", Frame: FrameNsif, DCL: "dcl26", RawDir: "phsen1", Tag: "phsen1",
			Parser: "parse_phsen", Processor: "proc_phsen", CalibUID: uid(name, "phsen1"),
			Ext: "json"},
		{Name: "spkir", Frame: FrameNsif, DCL: "dcl26", RawDir: "spkir", Tag: "spkir",
			Parser: "parse_spkir", Ext: "json"},
		{Name: "velpt", Frame: FrameNsif, DCL: "dcl26", RawDir: "velpt1", Tag: "velpt1",
			Parser: "parse_velpt", Ext: "json"},
	}
	if mfnAdcp != "" {
		ins = append(ins,
			// MFN
			superv("cpm3"),
			superv("dcl35"),
			superv("dcl37"),
			Instrument{Name: "adcp", Frame: FrameMfn, DCL: "dcl35", RawDir: mfnAdcp,
				Tag: mfnAdcp, Parser: "parse_adcp", Ext: "json", SkipIfParsed: true},
			Instrument{Name: "ctdbp", Frame: FrameMfn, DCL: "dcl37", RawDir: "ctdbp2",
				Tag: "ctdbp2", Parser: "parse_ctdbp", Ext: "json", Switch: 2},
			Instrument{Name: "pco2w", Frame: FrameMfn, DCL: "dcl35", RawDir: "pco2w1",
				Tag: "pco2w1", Parser: "parse_pco2w", Processor: "proc_pco2w",
				CalibUID: uid(name, "pco2w1"), Ext: "json"},
			Instrument{Name: "phsen", Frame: FrameMfn, DCL: "dcl35", RawDir: "phsen2",
				Tag: "phsen2", Parser: "parse_phsen", Processor: "proc_phsen",
				CalibUID: uid(name, "phsen2"), Ext: "json"},
			Instrument{Name: "presf", Frame: FrameMfn, DCL: "dcl35", RawDir: "presf",
				Tag: "presf", Parser: "parse_presf", Ext: "json"},
			Instrument{Name: "vel3d", Frame: FrameMfn, DCL: "dcl37", RawDir: "vel3d",
				Tag: "vel3d", Parser: "parse_vel3d", Ext: "json"},
			Instrument{Name: "zplsc", Frame: FrameMfn, DCL: "dcl37", RawDir: "zplsc",
				Tag: "zplsc", Parser: "parse_zplsc", Ext: "mat", SkipIfParsed: true},
		)
		if dualOptaa {
			ins = append(ins, Instrument{Name: "optaa", Frame: FrameMfn, DCL: "dcl37",
				RawDir: "optaa2", Tag: "optaa2", Parser: "parse_optaa",
				Processor: "proc_optaa", CalibUID: uid(name, "optaa2"),
				Ext: "json", Glob: true, SkipIfParsed: true})
		}
	}
	return &Platform{Name: name, Class: "csm", Instruments: ins}
}

func inshoreSurface(name string, dualOptaa bool) *Platform {
	ins := []Instrument{
		// power system
		{Name: "pwrsys", Frame: FrameBuoy, DCL: "pwrsys", Tag: "pwrsys",
			Parser: "parse_pwrsys", Ext: "json"},
		// buoy
		superv("cpm1"),
		superv("dcl17"),
		{Name: "gps", Frame: FrameBuoy, DCL: "cpm1", RawDir: "gps", Tag: "gps",
			Parser: "parse_gps", Ext: "json"},
		{Name: "mopak", Frame: FrameBuoy, DCL: "dcl17", RawDir: "mopak", Tag: "mopak",
			Parser: "parse_mopak", Ext: "mat", Glob: true},
		{Name: "velpt", Frame: FrameBuoy, DCL: "dcl17", RawDir: "velpt1", Tag: "velpt1",
			Parser: "parse_velpt", Ext: "json"},
		// NSIF
		superv("dcl16"),
		{Name: "ctdbp", Frame: FrameNsif, DCL: "dcl16", RawDir: "ctdbp1", Tag: "ctdbp1",
			Parser: "parse_ctdbp", Ext: "json", Switch: 1},
		{Name: "dosta", Frame: FrameNsif, DCL: "dcl16", RawDir: "dosta", Tag: "dosta",
			Parser: "parse_dosta", Ext: "json"},
		{Name: "flort", Frame: FrameNsif, DCL: "dcl16", RawDir: "flort", Tag: "flort",
			Parser: "parse_flort", Ext: "json"},
		{Name: "nutnr", Frame: FrameNsif, DCL: "dcl16", RawDir: "nutnr", Tag: "nutnr",
			Parser: "parse_nutnr", Ext: "json"},
		{Name: "optaa", Frame: FrameNsif, DCL: "dcl16", RawDir: "optaa1", Tag: "optaa1",
			Parser: "parse_optaa", Processor: "proc_optaa", CalibUID: uid(name, "optaa1"),
			Ext: "json", Glob: true, SkipIfParsed: true},
		{Name: "phsen", Frame: FrameNsif, DCL: "dcl16", RawDir: "phsen1", Tag: "phsen1",
			Parser: "parse_phsen", Processor: "proc_phsen", CalibUID: uid(name, "phsen1"),
			Ext: "json"},
		{Name: "spkir", Frame: FrameNsif, DCL: "dcl16", RawDir: "spkir", Tag: "spkir",
			Parser: "parse_spkir", Ext: "json"},
		{Name: "velpt", Frame: FrameNsif, DCL: "dcl16", RawDir: "velpt2", Tag: "velpt2",
			Parser: "parse_velpt", Ext: "json"},
		// MFN
		superv("dcl37"),
		{Name: "adcp", Frame: FrameMfn, DCL: "dcl37", RawDir: "adcpt", Tag: "adcpt",
			Parser: "parse_adcp", Ext: "json", SkipIfParsed: true},
		{Name: "ctdbp", Frame: FrameMfn, DCL: "dcl37", RawDir: "ctdbp3", Tag: "ctdbp3",
			Parser: "parse_ctdbp", Ext: "json", Switch: 2},
		{Name: "pco2w", Frame: FrameMfn, DCL: "dcl37", RawDir: "pco2w2", Tag: "pco2w2",
			Parser: "parse_pco2w", Processor: "proc_pco2w", CalibUID: uid(name, "pco2w2"),
			Ext: "json"},
		{Name: "phsen", Frame: FrameMfn, DCL: "dcl37", RawDir: "phsen2", Tag: "phsen2",
			Parser: "parse_phsen", Processor: "proc_phsen", CalibUID: uid(name, "phsen2"),
			Ext: "json"},
		{Name: "presf", Frame: FrameMfn, DCL: "dcl37", RawDir: "presf", Tag: "presf",
			Parser: "parse_presf", Ext: "json"},
		{Name: "vel3d", Frame: FrameMfn, DCL: "dcl37", RawDir: "vel3d", Tag: "vel3d",
			Parser: "parse_vel3d", Ext: "json"},
		{Name: "zplsc", Frame: FrameMfn, DCL: "dcl37", RawDir: "zplsc", Tag: "zplsc",
			Parser: "parse_zplsc", Ext: "mat", SkipIfParsed: true},
	}
	if dualOptaa {
		ins = append(ins, Instrument{Name: "optaa", Frame: FrameMfn, DCL: "dcl37",
			RawDir: "optaa2", Tag: "optaa2", Parser: "parse_optaa",
			Processor: "proc_optaa", CalibUID: uid(name, "optaa2"),
			Ext: "json", Glob: true, SkipIfParsed: true})
	}
	return &Platform{Name: name, Class: "issm", Instruments: ins}
}
