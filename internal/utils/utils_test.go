package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
)

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"june", "June"},
		{"  ALL ", "All"},
		{"new york city", "New York City"},
		{"", ""},
	}
	for _, c := range cases {
		if got := utils.TitleCase(c.in); got != c.want {
			t.Errorf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSafeWriteFileCreatesDir(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "report.txt")
	if err := utils.SafeWriteFile(p, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("content = %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := utils.ExpandHome("~/data")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "data") {
		t.Fatalf("got %q", got)
	}
	if got, _ := utils.ExpandHome("rel/path"); got != "rel/path" {
		t.Fatalf("relative path changed: %q", got)
	}
}
