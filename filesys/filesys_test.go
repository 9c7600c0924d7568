package filesys

import (
	"os"
	"path"
	"reflect"
	"testing"
)

func TestEnumerateDayFiles(t *testing.T) {
	dir, err := PopulateTestData("filesys",
		TestFile{"mopak", "20161012_000000.mopak.log", []byte("x")},
		TestFile{"mopak", "20161012_120000.mopak.log", []byte("y")},
		TestFile{"mopak", "20161012_180000.mopak.log", []byte{}}, // zero-byte, excluded
		TestFile{"mopak", "20161013_000000.mopak.log", []byte("z")},
		TestFile{"mopak", "20161012.metbk.log", []byte("w")},
	)
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	files, empty, err := EnumerateDayFiles(path.Join(dir, "mopak"), "20161012*.mopak.log")
	if err != nil {
		t.Fatalf("EnumerateDayFiles returned error %q", err)
	}
	if !reflect.DeepEqual(files, []string{
		"20161012_000000.mopak.log",
		"20161012_120000.mopak.log",
	}) {
		t.Fatalf("EnumerateDayFiles returned the wrong files %q", files)
	}
	if !reflect.DeepEqual(empty, []string{"20161012_180000.mopak.log"}) {
		t.Fatalf("EnumerateDayFiles returned the wrong empty files %q", empty)
	}
}

func TestEnumerateMissingDir(t *testing.T) {
	files, empty, err := EnumerateDayFiles("/nonexistent/raw/tree", "20161012*.mopak.log")
	if err != nil {
		t.Fatalf("Missing directory should not be an error, got %q", err)
	}
	if len(files) != 0 || len(empty) != 0 {
		t.Fatalf("Expected no files, got %q %q", files, empty)
	}
}

func TestIsFile(t *testing.T) {
	dir, err := PopulateTestData("filesys", TestFile{"d", "f.log", []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if !IsFile(path.Join(dir, "d", "f.log")) {
		t.Error("Existing file not recognized")
	}
	if IsFile(path.Join(dir, "d")) {
		t.Error("Directory recognized as file")
	}
	if IsFile(path.Join(dir, "d", "missing.log")) {
		t.Error("Missing file recognized")
	}
}
