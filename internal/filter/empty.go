package filter

import (
	"io"
	"os"
)

// isEmptyDir reports whether path is a directory with no entries. Errors
// reading the directory are treated as "not empty" so a permission problem
// never silently matches --type empty.
func isEmptyDir(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return err == io.EOF
}
