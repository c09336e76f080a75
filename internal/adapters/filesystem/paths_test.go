package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUniquify(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "report")

	if got := Uniquify(base); got != base {
		t.Errorf("expected free path unchanged, got %s", got)
	}

	if err := os.WriteFile(base, nil, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if got := Uniquify(base); got != base+".1" {
		t.Errorf("expected %s.1, got %s", base, got)
	}

	if err := os.Mkdir(base+".1", 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	// Suffixes are appended to the original path, never stacked.
	if got := Uniquify(base); got != base+".2" {
		t.Errorf("expected %s.2, got %s", base, got)
	}
}

func TestUniquify_DanglingSymlinkCountsAsTaken(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if got := Uniquify(link); got != link+".1" {
		t.Errorf("expected %s.1, got %s", link, got)
	}
}

func TestUniquify_NameTooLongReturnedUnchanged(t *testing.T) {
	// 304 bytes in UTF-8, over NAME_MAX
	long := filepath.Join(t.TempDir(), strings.Repeat("文", 100)+".txt")

	if got := Uniquify(long); got != long {
		t.Errorf("expected path unchanged, got %s", got)
	}
}
