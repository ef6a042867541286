package audio

import (
	"math"
	"testing"
	"time"
)

func TestNewSignalValidates(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int
		rate     int
		channels int
		depth    int
	}{
		{"zero rate", []int{1}, 0, 1, 16},
		{"zero channels", []int{1}, 8000, 0, 16},
		{"odd depth", []int{1}, 8000, 1, 12},
		{"ragged frames", []int{1, 2, 3}, 8000, 2, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSignal(tt.samples, tt.rate, tt.channels, tt.depth); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewSignalCopiesSamples(t *testing.T) {
	samples := []int{1, 2, 3, 4}
	sig, err := NewSignal(samples, 4, 2, 16)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	samples[0] = 99
	if sig.samples[0] != 1 {
		t.Fatal("signal shares caller slice")
	}
	out := sig.Samples()
	out[1] = 99
	if sig.samples[1] != 2 {
		t.Fatal("Samples exposes internal slice")
	}
	if sig.Frames() != 2 || sig.Duration() != 500*time.Millisecond {
		t.Fatalf("unexpected frames %d duration %v", sig.Frames(), sig.Duration())
	}
}

func TestLoudnessHelpers(t *testing.T) {
	sig, err := NewSignal([]int{16384, -16384}, 8000, 1, 16)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	if sig.Peak() != 16384 {
		t.Fatalf("unexpected peak %d", sig.Peak())
	}
	if got := sig.DBFS(); math.Abs(got-20*math.Log10(16384.0/32767.0)) > 1e-9 {
		t.Fatalf("unexpected dBFS %v", got)
	}
	silent, _ := NewSignal([]int{128, 128}, 8000, 1, 8)
	if !math.IsInf(silent.DBFS(), -1) {
		t.Fatalf("expected -Inf for silence, got %v", silent.DBFS())
	}
}

func TestResampleEmptySignal(t *testing.T) {
	sig, err := NewSignal(nil, 8000, 1, 16)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	out := resample(sig, 16000, 8000)
	if out.Frames() != 0 || out.FrameRate() != 8000 {
		t.Fatalf("unexpected output %d frames at %d Hz", out.Frames(), out.FrameRate())
	}
}

func TestClipped(t *testing.T) {
	quiet, _ := NewSignal([]int{100, -100}, 8000, 1, 16)
	if quiet.Clipped() {
		t.Fatal("quiet signal reported as clipped")
	}
	loud, _ := NewSignal([]int{32767, 0}, 8000, 1, 16)
	if !loud.Clipped() {
		t.Fatal("full-scale sample not reported as clipped")
	}
	floor8, _ := NewSignal([]int{0, 128}, 8000, 1, 8)
	if !floor8.Clipped() {
		t.Fatal("8-bit sample at 0 is the negative limit")
	}
	centre8, _ := NewSignal([]int{128, 200}, 8000, 1, 8)
	if centre8.Clipped() {
		t.Fatal("8-bit signal within range reported as clipped")
	}
}
