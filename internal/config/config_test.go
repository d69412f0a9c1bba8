package config

import "testing"

func TestEnableOutputBuffering(t *testing.T) {
	if (Config{Threads: 1}).EnableOutputBuffering() {
		t.Error("single thread should not enable output buffering")
	}
	if !(Config{Threads: 4}).EnableOutputBuffering() {
		t.Error("multiple threads should enable output buffering")
	}
}

func TestDefaultMaxBufferTime(t *testing.T) {
	if DefaultMaxBufferTime.Milliseconds() != 100 {
		t.Errorf("DefaultMaxBufferTime = %v, want 100ms", DefaultMaxBufferTime)
	}
}
