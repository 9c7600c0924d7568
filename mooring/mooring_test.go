package mooring

import (
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range Names(nil) {
		p, err := Lookup(nil, name)
		if err != nil {
			t.Fatalf("Lookup(%s) returned error %q", name, err)
		}
		if len(p.Instruments) == 0 {
			t.Fatalf("Platform %s has no instruments", name)
		}
	}

	// Case folding
	p, err := Lookup(nil, "CE02SHSM")
	if err != nil || p.Name != "ce02shsm" {
		t.Fatalf("Case-folded lookup failed: %v %v", p, err)
	}

	if _, err := Lookup(nil, "gi01sumo"); err == nil {
		t.Fatal("Expected error for unsupported platform")
	}
}

func TestTraversalOrder(t *testing.T) {
	// Power system first, then buoy, NSIF, MFN; no frame revisited once left.
	rank := map[Frame]int{FrameBuoy: 0, FrameNsif: 1, FrameMfn: 2}
	for _, name := range Names(nil) {
		p, _ := Lookup(nil, name)
		if p.Instruments[0].Tag != "pwrsys" {
			t.Errorf("Platform %s does not dispatch the power system first", name)
		}
		prev := 0
		for _, in := range p.Instruments {
			r := rank[in.Frame]
			if r < prev {
				t.Errorf("Platform %s: %s on %s dispatched after a later frame",
					name, in.Tag, in.Frame)
			}
			prev = r
		}
	}
}

func TestVariantDifferences(t *testing.T) {
	shelf, _ := Lookup(nil, "ce07shsm")
	offshore, _ := Lookup(nil, "ce09ossm")
	if in, found := shelf.FindInstrument("adcpt"); !found || in.Frame != FrameMfn {
		t.Error("ce07shsm should carry adcpt on the MFN")
	}
	if in, found := offshore.FindInstrument("adcps"); !found || in.Frame != FrameMfn {
		t.Error("ce09ossm should carry adcps on the MFN")
	}

	for _, name := range []string{"ce02shsm", "ce04ossm"} {
		p, _ := Lookup(nil, name)
		if p.HasMfn() {
			t.Errorf("%s should not have an MFN frame", name)
		}
	}
	for _, name := range []string{"ce07shsm", "ce09ossm", "ce01issm", "ce06issm"} {
		p, _ := Lookup(nil, name)
		if !p.HasMfn() {
			t.Errorf("%s should have an MFN frame", name)
		}
	}

	// Dual optical-absorption sensor on ce01issm only
	one, _ := Lookup(nil, "ce01issm")
	six, _ := Lookup(nil, "ce06issm")
	if _, found := one.FindInstrument("optaa2"); !found {
		t.Error("ce01issm should carry a second optaa")
	}
	if _, found := six.FindInstrument("optaa2"); found {
		t.Error("ce06issm should not carry a second optaa")
	}
}

func TestFindInstrumentAt(t *testing.T) {
	p, _ := Lookup(nil, "ce02shsm")
	in, found := p.FindInstrumentAt("dcl27", "superv")
	if !found || in.Name != "superv_dcl27" {
		t.Fatalf("FindInstrumentAt returned %v %v", in, found)
	}
	if _, found := p.FindInstrumentAt("dcl35", "superv"); found {
		t.Fatal("ce02shsm has no dcl35")
	}
}

func TestProcessorsHaveCalibration(t *testing.T) {
	for _, name := range Names(nil) {
		p, _ := Lookup(nil, name)
		for _, in := range p.Instruments {
			if in.Processor != "" && in.CalibUID == "" {
				t.Errorf("Platform %s: %s has a processor but no calibration UID",
					name, in.Tag)
			}
		}
	}
}

func TestReadTablesFrom(t *testing.T) {
	good := `[{"name":"CE02SHSM","class":"csm","instruments":[
		{"name":"phsen","frame":"nsif","dcl":"dcl26","raw_dir":"phsen1","tag":"phsen1",
		 "parser":"parse_phsen","ext":"json"}]}]`
	tables, err := ReadTablesFrom(strings.NewReader(good))
	if err != nil {
		t.Fatalf("ReadTablesFrom returned error %q", err)
	}
	if _, err := Lookup(tables, "ce02shsm"); err != nil {
		t.Fatal("Platform name not canonicalized on load")
	}

	bad := []string{
		`[]`,
		`[{"name":"x","class":"csm","instruments":[]}]`,
		`[{"name":"x","class":"mooring","instruments":[
			{"name":"a","frame":"nsif","dcl":"d","tag":"a","parser":"p","ext":"json"}]}]`,
		`[{"name":"x","class":"csm","instruments":[
			{"name":"a","frame":"keel","dcl":"d","tag":"a","parser":"p","ext":"json"}]}]`,
		`[{"name":"x","class":"csm","instruments":[
			{"name":"a","frame":"nsif","dcl":"d","tag":"a","parser":"p","ext":"csv"}]}]`,
		`[{"name":"x","class":"csm","instruments":[
			{"name":"a","frame":"nsif","dcl":"d","tag":"a","parser":"p","ext":"json",
			 "processor":"proc_a"}]}]`,
	}
	for i, text := range bad {
		if _, err := ReadTablesFrom(strings.NewReader(text)); err == nil {
			t.Errorf("Case %d: expected validation error", i)
		}
	}
}
