package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wavscribe/internal/services"
)

// Transform changes speed, then applies the volume delta. The input signal is
// left untouched.
func Transform(sig Signal, speedScale float64, volume string) (Signal, error) {
	db, err := ParseVolume(volume)
	if err != nil {
		return Signal{}, err
	}
	sped, err := ChangeSpeed(sig, speedScale)
	if err != nil {
		return Signal{}, err
	}
	return ApplyGain(sped, db), nil
}

// ChangeSpeed reinterprets the samples at frame_rate*scale and resamples them
// back to the original rate, so pitch and duration change together. Duration
// scales by 1/scale.
func ChangeSpeed(sig Signal, scale float64) (Signal, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return Signal{}, services.Wrap(services.ErrInvalidSpeedScale, "transform", "speed", fmt.Sprintf("scale %v must be positive", scale), nil)
	}
	nominal := int(float64(sig.frameRate) * scale)
	if nominal <= 0 {
		return Signal{}, services.Wrap(services.ErrInvalidSpeedScale, "transform", "speed",
			fmt.Sprintf("scale %v gives frame rate %d for a %d Hz signal", scale, nominal, sig.frameRate), nil)
	}
	return resample(sig, nominal, sig.frameRate), nil
}

// resample converts sig, read as if sampled at from Hz, to to Hz using linear
// interpolation between neighbouring frames.
func resample(sig Signal, from, to int) Signal {
	if from == to {
		return sig
	}
	n := sig.Frames()
	m := int(int64(n) * int64(to) / int64(from))
	ch := sig.channels
	out := make([]int, m*ch)
	if n == 0 {
		return sig.withSamples(out)
	}
	step := float64(from) / float64(to)
	for i := 0; i < m; i++ {
		pos := float64(i) * step
		i0 := int(pos)
		if i0 >= n {
			i0 = n - 1
		}
		frac := pos - float64(i0)
		i1 := min(i0+1, n-1)
		for c := 0; c < ch; c++ {
			a := float64(sig.samples[i0*ch+c])
			b := float64(sig.samples[i1*ch+c])
			out[i*ch+c] = int(math.Round(a + (b-a)*frac))
		}
	}
	return sig.withSamples(out)
}

// ParseVolume reads a volume delta of the form "+<dB>" or "-<dB>".
func ParseVolume(volume string) (float64, error) {
	v := strings.TrimSpace(volume)
	if len(v) < 2 {
		return 0, volumeError(volume, "expected \"+<dB>\" or \"-<dB>\"")
	}
	sign, rest := v[0], v[1:]
	if sign != '+' && sign != '-' {
		return 0, volumeError(volume, "must start with + or -")
	}
	if rest[0] == '+' || rest[0] == '-' {
		return 0, volumeError(volume, "sign given twice")
	}
	db, err := strconv.ParseFloat(rest, 64)
	if err != nil || math.IsNaN(db) || math.IsInf(db, 0) {
		return 0, volumeError(volume, "decibel value is not a finite number")
	}
	if sign == '-' {
		db = -db
	}
	return db, nil
}

func volumeError(volume, reason string) error {
	return services.Wrap(services.ErrInvalidVolumeFormat, "transform", "volume", fmt.Sprintf("%q: %s", volume, reason), nil)
}

// ApplyGain scales every sample by 10^(db/20), clipping at the bit depth's range.
func ApplyGain(sig Signal, db float64) Signal {
	if db == 0 {
		return sig
	}
	factor := math.Pow(10, db/20)
	lo, hi := sampleRange(sig.bitDepth)
	out := make([]int, len(sig.samples))
	for i, v := range sig.samples {
		scaled := math.Round(float64(sig.center(v)) * factor)
		switch {
		case scaled > float64(hi):
			scaled = float64(hi)
		case scaled < float64(lo):
			scaled = float64(lo)
		}
		out[i] = sig.uncenter(int(scaled))
	}
	return sig.withSamples(out)
}
