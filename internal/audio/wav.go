package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"wavscribe/internal/fileutil"
	"wavscribe/internal/services"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Load reads and decodes the WAV file at path.
func Load(path string) (Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return Signal{}, services.Wrap(services.ErrUnreadableAudio, "load", "open", path, err)
	}
	defer f.Close()

	sig, err := decode(f)
	if err != nil {
		return Signal{}, services.Wrap(services.ErrUnreadableAudio, "load", "decode", path, err)
	}
	return sig, nil
}

// Decode reads a WAV stream from r.
func Decode(r io.ReadSeeker) (Signal, error) {
	sig, err := decode(r)
	if err != nil {
		return Signal{}, services.Wrap(services.ErrUnreadableAudio, "load", "decode", "", err)
	}
	return sig, nil
}

func decode(r io.ReadSeeker) (Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return Signal{}, fmt.Errorf("not a wav file: %w", err)
		}
		return Signal{}, errors.New("not a wav file")
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return Signal{}, fmt.Errorf("unsupported wav encoding %d (integer PCM only)", dec.WavAudioFormat)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Signal{}, fmt.Errorf("read pcm data: %w", err)
	}
	return NewSignal(buf.Data, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth))
}

// Save writes sig as a PCM WAV file at path. An existing file is never
// overwritten.
func Save(sig Signal, path string) error {
	out, err := fileutil.CreateExclusive(path, 0o644)
	if err != nil {
		return services.Wrap(services.ErrWrite, "persist", "create", path, err)
	}
	if err := Encode(out, sig); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return services.Wrap(services.ErrWrite, "persist", "encode", path, err)
	}
	if err := out.Close(); err != nil {
		return services.Wrap(services.ErrWrite, "persist", "close", path, err)
	}
	return nil
}

// Encode writes sig to w as a PCM WAV stream.
func Encode(w io.WriteSeeker, sig Signal) error {
	if sig.channels == 0 {
		return errors.New("encode: empty signal")
	}
	enc := wav.NewEncoder(w, sig.frameRate, sig.bitDepth, sig.channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: sig.channels, SampleRate: sig.frameRate},
		Data:           sig.samples,
		SourceBitDepth: sig.bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode pcm data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav header: %w", err)
	}
	return nil
}
