package progress

import "testing"

func TestDisabledBarMethodsAreNoOps(t *testing.T) {
	b := New(false)
	b.Tick()
	b.Finish()
	if b.bar != nil {
		t.Error("disabled bar should have nil underlying progressbar")
	}
}

func TestStatsStringReflectsCounters(t *testing.T) {
	b := New(false)
	b.Stats().Scanned.Add(3)
	b.Stats().Matched.Add(1)
	s := b.Stats().String()
	if s == "" {
		t.Fatal("expected non-empty summary string")
	}
}

func TestEnabledBarHasUnderlyingBar(t *testing.T) {
	b := New(true)
	if b.bar == nil {
		t.Error("enabled bar should construct an underlying progressbar")
	}
	b.Tick()
	b.Finish()
}
