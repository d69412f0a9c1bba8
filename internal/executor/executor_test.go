package executor

import "testing"

func TestExpandAllPlaceholders(t *testing.T) {
	path := "/a/b/c.txt"
	cases := map[string]string{
		"{}":   "/a/b/c.txt",
		"{.}":  "/a/b/c",
		"{/}":  "c.txt",
		"{//}": "/a/b",
		"{/.}": "c",
	}
	for tok, want := range cases {
		if got := Expand(tok, path); got != want {
			t.Errorf("Expand(%q, %q) = %q, want %q", tok, path, got, want)
		}
	}
}

func TestStripExtNoExtension(t *testing.T) {
	if got := stripExt("/a/b/README"); got != "/a/b/README" {
		t.Errorf("stripExt = %q", got)
	}
}

func TestBuildArgvNoPlaceholderAppendsPaths(t *testing.T) {
	spec := CommandSpec{Argv: []string{"wc", "-l"}}
	argv := BuildArgv(spec, []string{"a.txt", "b.txt"})
	want := []string{"wc", "-l", "a.txt", "b.txt"}
	if len(argv) != len(want) {
		t.Fatalf("BuildArgv = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestBuildArgvPlaceholderRepeatsPerPath(t *testing.T) {
	spec := CommandSpec{Mode: ModeBatch, Argv: []string{"echo", "{}"}}
	argv := BuildArgv(spec, []string{"a.txt", "b.txt"})
	want := []string{"echo", "a.txt", "b.txt"}
	if len(argv) != len(want) {
		t.Fatalf("BuildArgv = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestHasPlaceholderFalseForPlainCommand(t *testing.T) {
	spec := CommandSpec{Argv: []string{"wc", "-l"}}
	if spec.HasPlaceholder() {
		t.Error("expected no placeholder")
	}
}
