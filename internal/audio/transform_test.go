package audio_test

import (
	"errors"
	"math"
	"testing"

	"wavscribe/internal/audio"
	"wavscribe/internal/services"
	"wavscribe/internal/testsupport"
)

func TestChangeSpeedScalesDurationAndKeepsRate(t *testing.T) {
	sig := testsupport.SineSignal(t, 44100, 1, 16, 5.0, 440, 8000)

	tests := []struct {
		scale      float64
		wantFrames int
	}{
		{1.0, 220500},
		{2.0, 110250},
		{1.5, 147000},
		{0.5, 441000},
	}
	for _, tt := range tests {
		out, err := audio.ChangeSpeed(sig, tt.scale)
		if err != nil {
			t.Fatalf("ChangeSpeed(%v) returned %v", tt.scale, err)
		}
		if out.FrameRate() != sig.FrameRate() {
			t.Fatalf("scale %v: frame rate %d, want %d", tt.scale, out.FrameRate(), sig.FrameRate())
		}
		if out.Frames() != tt.wantFrames {
			t.Fatalf("scale %v: frames %d, want %d", tt.scale, out.Frames(), tt.wantFrames)
		}
		want := sig.Duration().Seconds() / tt.scale
		if got := out.Duration().Seconds(); math.Abs(got-want) > 0.001 {
			t.Fatalf("scale %v: duration %.4fs, want %.4fs", tt.scale, got, want)
		}
	}
}

func TestChangeSpeedUnitScaleIsIdentity(t *testing.T) {
	sig := testsupport.SineSignal(t, 8000, 2, 16, 0.25, 300, 12000)
	out, err := audio.ChangeSpeed(sig, 1.0)
	if err != nil {
		t.Fatalf("ChangeSpeed: %v", err)
	}
	in, got := sig.Samples(), out.Samples()
	if len(in) != len(got) {
		t.Fatalf("length changed: %d -> %d", len(in), len(got))
	}
	for i := range in {
		if in[i] != got[i] {
			t.Fatalf("sample %d changed: %d -> %d", i, in[i], got[i])
		}
	}
}

func TestChangeSpeedPreservesChannelsAndInterpolates(t *testing.T) {
	sig, err := audio.NewSignal([]int{0, 100, 10, 110, 20, 120, 30, 130}, 4, 2, 16)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	out, err := audio.ChangeSpeed(sig, 2.0)
	if err != nil {
		t.Fatalf("ChangeSpeed: %v", err)
	}
	want := []int{0, 100, 20, 120}
	got := out.Samples()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	slow, err := audio.ChangeSpeed(sig, 0.5)
	if err != nil {
		t.Fatalf("ChangeSpeed: %v", err)
	}
	wantSlow := []int{0, 100, 5, 105, 10, 110, 15, 115, 20, 120, 25, 125, 30, 130, 30, 130}
	gotSlow := slow.Samples()
	if len(gotSlow) != len(wantSlow) {
		t.Fatalf("got %v, want %v", gotSlow, wantSlow)
	}
	for i := range wantSlow {
		if gotSlow[i] != wantSlow[i] {
			t.Fatalf("got %v, want %v", gotSlow, wantSlow)
		}
	}
}

func TestChangeSpeedRejectsNonPositive(t *testing.T) {
	sig := testsupport.SineSignal(t, 8000, 1, 16, 0.1, 300, 1000)
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1), 0.00001} {
		if _, err := audio.ChangeSpeed(sig, scale); !errors.Is(err, services.ErrInvalidSpeedScale) {
			t.Fatalf("scale %v: expected invalid speed scale, got %v", scale, err)
		}
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"+5", 5, true},
		{"-10", -10, true},
		{"+0", 0, true},
		{"+2.5", 2.5, true},
		{" -3 ", -3, true},
		{"5", 0, false},
		{"", 0, false},
		{"+", 0, false},
		{"*5", 0, false},
		{"+five", 0, false},
		{"+-5", 0, false},
		{"+inf", 0, false},
		{"-NaN", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := audio.ParseVolume(tt.input)
			if !tt.ok {
				if !errors.Is(err, services.ErrInvalidVolumeFormat) {
					t.Fatalf("expected invalid volume format, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseVolume(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyGainChangesLoudnessByDecibels(t *testing.T) {
	sig := testsupport.SineSignal(t, 16000, 1, 16, 1.0, 440, 4000)

	for _, db := range []float64{5, -10, 3.5, -0.5} {
		out := audio.ApplyGain(sig, db)
		delta := out.DBFS() - sig.DBFS()
		if math.Abs(delta-db) > 0.05 {
			t.Fatalf("gain %v dB: loudness changed by %.3f dB", db, delta)
		}
		if out.Frames() != sig.Frames() || out.FrameRate() != sig.FrameRate() {
			t.Fatalf("gain altered signal shape")
		}
	}
}

func TestApplyGainReducesPeakByTenDecibels(t *testing.T) {
	sig := testsupport.SineSignal(t, 44100, 1, 16, 0.5, 440, 20000)
	out := audio.ApplyGain(sig, -10)
	ratio := float64(out.Peak()) / float64(sig.Peak())
	if math.Abs(20*math.Log10(ratio)+10) > 0.01 {
		t.Fatalf("peak ratio %.4f is not -10 dB", ratio)
	}
}

func TestApplyGainClips(t *testing.T) {
	sig, err := audio.NewSignal([]int{30000, -30000, 100}, 8000, 1, 16)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	got := audio.ApplyGain(sig, 20).Samples()
	want := []int{32767, -32768, 1000}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestApplyGainEightBitIsCentred(t *testing.T) {
	sig, err := audio.NewSignal([]int{128, 138, 118, 255, 0}, 8000, 1, 8)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	got := audio.ApplyGain(sig, 20*math.Log10(2)).Samples()
	want := []int{128, 148, 108, 255, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTransformLeavesInputUntouched(t *testing.T) {
	sig := testsupport.SineSignal(t, 8000, 1, 16, 0.5, 200, 3000)
	before := sig.Samples()

	out, err := audio.Transform(sig, 2.0, "-6")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out.Frames() != sig.Frames()/2 {
		t.Fatalf("unexpected frames %d", out.Frames())
	}
	after := sig.Samples()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input sample %d mutated", i)
		}
	}
}

func TestTransformIdentity(t *testing.T) {
	sig := testsupport.SineSignal(t, 44100, 1, 16, 5.0, 440, 8000)
	out, err := audio.Transform(sig, 1.0, "+0")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out.Duration() != sig.Duration() {
		t.Fatalf("duration changed: %v -> %v", sig.Duration(), out.Duration())
	}
	if out.DBFS() != sig.DBFS() {
		t.Fatalf("loudness changed: %v -> %v", sig.DBFS(), out.DBFS())
	}
}

func TestTransformRejectsVolumeWithoutSign(t *testing.T) {
	sig := testsupport.SineSignal(t, 8000, 1, 16, 0.1, 200, 3000)
	if _, err := audio.Transform(sig, 1.5, "5"); !errors.Is(err, services.ErrInvalidVolumeFormat) {
		t.Fatalf("expected invalid volume format, got %v", err)
	}
}
