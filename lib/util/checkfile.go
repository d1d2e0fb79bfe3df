package util

import (
	"os"
)

// CheckFileExists reports whether anything exists at fpath.
// A stat error other than "not exist" is treated as existing so callers
// never overwrite a file they could not inspect.
func CheckFileExists(fpath string) bool {
	_, err := os.Stat(fpath)
	return err == nil || !os.IsNotExist(err)
}
