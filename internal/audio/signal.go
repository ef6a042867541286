package audio

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Signal is an immutable decoded PCM buffer. Samples are interleaved by
// channel. 8-bit samples are unsigned (silence at 128); wider depths are
// signed and centred on zero.
type Signal struct {
	samples   []int
	frameRate int
	channels  int
	bitDepth  int
}

// NewSignal validates the parameters and copies samples into a new Signal.
func NewSignal(samples []int, frameRate, channels, bitDepth int) (Signal, error) {
	if frameRate <= 0 {
		return Signal{}, fmt.Errorf("frame rate must be positive, got %d", frameRate)
	}
	if channels <= 0 {
		return Signal{}, fmt.Errorf("channel count must be positive, got %d", channels)
	}
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return Signal{}, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	if len(samples)%channels != 0 {
		return Signal{}, errors.New("sample count is not a multiple of the channel count")
	}
	cp := make([]int, len(samples))
	copy(cp, samples)
	return Signal{samples: cp, frameRate: frameRate, channels: channels, bitDepth: bitDepth}, nil
}

func (s Signal) FrameRate() int { return s.frameRate }

func (s Signal) Channels() int { return s.channels }

func (s Signal) BitDepth() int { return s.bitDepth }

// Frames returns the number of sample frames (samples per channel).
func (s Signal) Frames() int {
	if s.channels == 0 {
		return 0
	}
	return len(s.samples) / s.channels
}

// Samples returns a copy of the interleaved samples.
func (s Signal) Samples() []int {
	cp := make([]int, len(s.samples))
	copy(cp, s.samples)
	return cp
}

// Duration is the nominal playback length at the signal's frame rate.
func (s Signal) Duration() time.Duration {
	if s.frameRate == 0 {
		return 0
	}
	return time.Duration(float64(s.Frames()) / float64(s.frameRate) * float64(time.Second))
}

// Peak returns the largest absolute centred sample value.
func (s Signal) Peak() int {
	peak := 0
	for _, v := range s.samples {
		c := s.center(v)
		if c < 0 {
			c = -c
		}
		if c > peak {
			peak = c
		}
	}
	return peak
}

// Clipped reports whether any sample sits at the edge of the bit depth's range.
func (s Signal) Clipped() bool {
	lo, hi := sampleRange(s.bitDepth)
	for _, v := range s.samples {
		if c := s.center(v); c <= lo || c >= hi {
			return true
		}
	}
	return false
}

// RMS returns the root mean square of the centred samples.
func (s Signal) RMS() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.samples {
		c := float64(s.center(v))
		sum += c * c
	}
	return math.Sqrt(sum / float64(len(s.samples)))
}

// DBFS expresses RMS loudness relative to full scale. Silence yields -Inf.
func (s Signal) DBFS() float64 {
	rms := s.RMS()
	if rms == 0 {
		return math.Inf(-1)
	}
	_, maxVal := sampleRange(s.bitDepth)
	return 20 * math.Log10(rms/float64(maxVal))
}

func (s Signal) center(v int) int {
	if s.bitDepth == 8 {
		return v - 128
	}
	return v
}

func (s Signal) uncenter(v int) int {
	if s.bitDepth == 8 {
		return v + 128
	}
	return v
}

// sampleRange returns the centred range representable at a bit depth.
func sampleRange(bitDepth int) (int, int) {
	half := 1 << (bitDepth - 1)
	return -half, half - 1
}

// withSamples builds a derived signal that takes ownership of samples.
func (s Signal) withSamples(samples []int) Signal {
	return Signal{samples: samples, frameRate: s.frameRate, channels: s.channels, bitDepth: s.bitDepth}
}
