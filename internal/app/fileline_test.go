package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.go")
	body := "package main\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		content string
		want    int
	}{
		{"exact single line", "fmt.Println(\"hi\")", 4},
		{"multi line", "func main() {\n\tfmt.Println(\"hi\")\n}", 3},
		{"first line fallback", "func main() {\n\tnot actually there\n}", 3},
		{"not found", "nowhere", 1},
		{"empty content", "", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FileLine(path, tc.content); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFileLine_MissingFile(t *testing.T) {
	if got := FileLine(filepath.Join(t.TempDir(), "absent"), "x"); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}
