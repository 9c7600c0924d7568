// Filesystem helpers for the raw and parsed trees.

package filesys

import (
	"os"
	"path"
	"path/filepath"
)

// EnumerateDayFiles finds the raw files in dir matching the same-day pattern, separating out
// zero-byte files (a partially-opened serial channel leaves those behind and the parsers choke
// on them).  The returned names are base names, sorted by Glob.  A missing directory is an empty
// result, not an error.

func EnumerateDayFiles(dir, pattern string) (files, empty []string, err error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, nil, err
	}
	files = []string{}
	empty = []string{}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Size() == 0 {
			empty = append(empty, path.Base(m))
		} else {
			files = append(files, path.Base(m))
		}
	}
	return files, empty, nil
}

// IsFile reports whether name exists and is a regular file.
func IsFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

type TestFile struct {
	Dir  string
	Name string
	Data []byte
}

// PopulateTestData creates a temp directory with the given subdirectories and files and returns
// its name.  The caller removes the directory when done, normally by way of `defer`.  If a nil
// error is returned there will be no directory.

func PopulateTestData(tag string, data ...TestFile) (string, error) {
	tempdir, err := os.MkdirTemp("", tag+"_test")
	if err != nil {
		return "", err
	}
	for _, d := range data {
		err = os.MkdirAll(path.Join(tempdir, d.Dir), 0700)
		if err != nil {
			os.RemoveAll(tempdir)
			return "", err
		}
		err = os.WriteFile(path.Join(tempdir, d.Dir, d.Name), d.Data, 0600)
		if err != nil {
			os.RemoveAll(tempdir)
			return "", err
		}
	}
	return tempdir, nil
}
