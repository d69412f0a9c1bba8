//go:build unix

package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofd/gofd/internal/direntry"
)

func TestOwnerConstraintMatchesCurrentUser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := direntry.NewNormal(path, 1, 0, false)

	c := OwnerConstraint{AnyUID: true, AnyGID: true}
	if !c.Keep(e) {
		t.Error("any/any constraint should keep every entry")
	}
}

func TestParseOwnerAnySides(t *testing.T) {
	c, err := ParseOwner("-", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !c.AnyUID || !c.AnyGID {
		t.Error("expected both sides to parse as any")
	}
}

func TestParseOwnerNumeric(t *testing.T) {
	c, err := ParseOwner("1000", "1000")
	if err != nil {
		t.Fatal(err)
	}
	if c.AnyUID || c.AnyGID || c.UID != 1000 || c.GID != 1000 {
		t.Errorf("ParseOwner(1000,1000) = %+v", c)
	}
}
