package paths

import (
	"testing"

	"cgharvest/mooring"
)

// The phsen example is the normative one: raw logs captured by dcl26 under cg_data, parsed
// artifact mirrored under nsif/phsen with the tag kept in the basename.

func TestPhsenTemplate(t *testing.T) {
	p, err := mooring.Lookup(nil, "ce02shsm")
	if err != nil {
		t.Fatal(err)
	}
	in, found := p.FindInstrument("phsen1")
	if !found {
		t.Fatal("No phsen1 on ce02shsm")
	}

	input := RawFile("/data/raw", "ce02shsm", "D00004", "20161012.phsen1.log", in)
	if input != "/data/raw/ce02shsm/D00004/cg_data/dcl26/phsen1/20161012.phsen1.log" {
		t.Fatalf("Wrong input path %s", input)
	}

	output := ParsedFile("/data/parsed", "ce02shsm", "D00004", "20161012.phsen1.log", in)
	if output != "/data/parsed/ce02shsm/D00004/nsif/phsen/20161012.phsen1.json" {
		t.Fatalf("Wrong output path %s", output)
	}

	proc := ProcessedFile("/data/parsed", "ce02shsm", "D00004", "20161012.phsen1.log", in)
	if proc != "/data/parsed/ce02shsm/D00004/nsif/phsen/20161012.phsen1.proc.json" {
		t.Fatalf("Wrong processed path %s", proc)
	}
}

func TestPowerSystemTemplate(t *testing.T) {
	// The power system has no instrument subdirectory under its logger directory.
	p, err := mooring.Lookup(nil, "ce01issm")
	if err != nil {
		t.Fatal(err)
	}
	in, found := p.FindInstrument("pwrsys")
	if !found {
		t.Fatal("No pwrsys on ce01issm")
	}
	input := RawFile("/data/raw", "ce01issm", "D00007", RawName("20161012", in), in)
	if input != "/data/raw/ce01issm/D00007/cg_data/pwrsys/20161012.pwrsys.log" {
		t.Fatalf("Wrong input path %s", input)
	}
}

func TestGlobPattern(t *testing.T) {
	p, _ := mooring.Lookup(nil, "ce02shsm")
	in, found := p.FindInstrument("mopak")
	if !found {
		t.Fatal("No mopak on ce02shsm")
	}
	if g := RawGlob("20161012", in); g != "20161012*.mopak.log" {
		t.Fatalf("Wrong glob %s", g)
	}
	// Timestamp-named raw files keep their full stem in the artifact name.
	out := ParsedFile("/p", "ce02shsm", "D00004", "20161012_233000.mopak.log", in)
	if out != "/p/ce02shsm/D00004/buoy/mopak/20161012_233000.mopak.mat" {
		t.Fatalf("Wrong output path %s", out)
	}
}

func TestDeterminism(t *testing.T) {
	p, _ := mooring.Lookup(nil, "ce09ossm")
	for i := range p.Instruments {
		in := &p.Instruments[i]
		a := ParsedFile("/p", p.Name, "D00001", RawName("20200101", in), in)
		b := ParsedFile("/p", p.Name, "D00001", RawName("20200101", in), in)
		if a != b {
			t.Fatalf("Nondeterministic path for %s", in.Tag)
		}
	}
}
