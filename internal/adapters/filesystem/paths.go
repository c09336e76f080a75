package filesystem

import (
	"fmt"
	"os"

	"ntfsundeletetree/internal/logger"
)

// Uniquify returns path unchanged if nothing exists there, otherwise the
// first of path.1, path.2, ... that is free. Not safe for concurrent
// callers on the same directory.
func Uniquify(path string) string {
	if !exists(path) {
		return path
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%d", path, i)
		if !exists(candidate) {
			logger.Info("%s -> %s", path, candidate)
			return candidate
		}
	}
}

// exists reports whether something is at path. Errors other than a
// missing entry (too long a name, no permission) count as free so the
// write itself fails for that one node.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
