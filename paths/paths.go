// Path templates for the raw and parsed data trees.
//
// These are pure functions; nothing here touches the filesystem.  The layout is the shared
// contract with the acquisition system on the write side and the parser/processor programs on
// the read side:
//
//  raw:       {raw_root}/{platform}/{DEPLOY}/cg_data/{dcl}/{raw_dir}/{yyyymmdd}.{tag}.log
//  parsed:    {parsed_root}/{platform}/{DEPLOY}/{frame}/{name}/{stem}.{ext}
//  processed: {parsed_root}/{platform}/{DEPLOY}/{frame}/{name}/{stem}.proc.{ext}
//
// where {stem} is the raw file's basename without the .log suffix, so the parsed artifact keeps
// the instrument tag: 20161012.phsen1.log parses to 20161012.phsen1.json.

package paths

import (
	"path"
	"strings"

	"cgharvest/mooring"
)

// RawDir is the directory holding an instrument's raw logs for one deployment.
func RawDir(rawRoot, platform, deployment string, in *mooring.Instrument) string {
	d := path.Join(rawRoot, platform, deployment, "cg_data", in.DCL)
	if in.RawDir != "" {
		d = path.Join(d, in.RawDir)
	}
	return d
}

// RawName is the dated raw file name for instruments with predictable names.
func RawName(day string, in *mooring.Instrument) string {
	return day + "." + in.Tag + ".log"
}

// RawGlob is the same-day pattern for instruments whose file names embed a timestamp.
func RawGlob(day string, in *mooring.Instrument) string {
	return day + "*." + in.Tag + ".log"
}

// ParsedGlob is the same-day pattern over parsed artifacts.  Processed artifacts do not match
// it: their .proc infix breaks the literal tail.
func ParsedGlob(day string, in *mooring.Instrument) string {
	return day + "*." + in.Tag + "." + in.Ext
}

// RawNameFor recovers the raw file name from a parsed artifact's base name.
func RawNameFor(parsedName string, in *mooring.Instrument) string {
	return strings.TrimSuffix(path.Base(parsedName), "."+in.Ext) + ".log"
}

// RawFile is the full input path for a raw file name.
func RawFile(rawRoot, platform, deployment, filename string, in *mooring.Instrument) string {
	return path.Join(RawDir(rawRoot, platform, deployment, in), filename)
}

// ParsedDir is the mirrored output directory for an instrument.
func ParsedDir(parsedRoot, platform, deployment string, in *mooring.Instrument) string {
	return path.Join(parsedRoot, platform, deployment, string(in.Frame), in.Name)
}

// ParsedFile is the parsed artifact path for a raw file name.
func ParsedFile(parsedRoot, platform, deployment, rawName string, in *mooring.Instrument) string {
	return path.Join(ParsedDir(parsedRoot, platform, deployment, in), stem(rawName)+"."+in.Ext)
}

// ProcessedFile is the processed artifact path: the .proc suffix goes before the extension.
func ProcessedFile(parsedRoot, platform, deployment, rawName string, in *mooring.Instrument) string {
	return path.Join(ParsedDir(parsedRoot, platform, deployment, in),
		stem(rawName)+".proc."+in.Ext)
}

func stem(rawName string) string {
	return strings.TrimSuffix(path.Base(rawName), ".log")
}
