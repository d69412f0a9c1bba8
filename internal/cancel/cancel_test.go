package cancel

import "testing"

func TestFlagStartsUnset(t *testing.T) {
	var f Flag
	if f.IsSet() {
		t.Error("new Flag should start unset")
	}
}

func TestFlagMonotonic(t *testing.T) {
	var f Flag
	f.set.Store(true)
	if !f.IsSet() {
		t.Error("flag should read back true once set")
	}
	// There is no public "unset"; nothing in this package ever clears it.
}
