package testsupport

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"wavscribe/internal/audio"
)

// SineSignal builds a sine tone with the given format. Every channel carries
// the same tone; amplitude is in centred sample units.
func SineSignal(t testing.TB, rate, channels, bitDepth int, seconds, freq float64, amplitude int) audio.Signal {
	t.Helper()

	frames := int(math.Round(float64(rate) * seconds))
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}
	samples := make([]int, 0, frames*channels)
	for i := 0; i < frames; i++ {
		v := int(math.Round(float64(amplitude) * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))))
		for c := 0; c < channels; c++ {
			samples = append(samples, v+offset)
		}
	}
	sig, err := audio.NewSignal(samples, rate, channels, bitDepth)
	if err != nil {
		t.Fatalf("build sine signal: %v", err)
	}
	return sig
}

// WriteSineWAV writes a 16-bit sine tone WAV to path, creating parent directories.
func WriteSineWAV(t testing.TB, path string, rate, channels int, seconds, freq float64, amplitude int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	sig := SineSignal(t, rate, channels, 16, seconds, freq, amplitude)
	if err := audio.Save(sig, path); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ListDir returns the names of the entries in dir, or nil if dir is missing.
func ListDir(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
