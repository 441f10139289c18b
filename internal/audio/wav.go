package audio

import (
	"errors"
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes mono float32 samples in [-1, 1] as 16-bit PCM.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(clamp(s) * 32767)
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close wav: %w", err)
	}

	return f.Close()
}

// ReadWAV decodes a WAV file into mono float32 samples in [-1, 1] and
// reports its sample rate.
func ReadWAV(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid wav")
	}

	pb, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if pb == nil || len(pb.Data) == 0 {
		return nil, 0, errors.New("empty wav")
	}

	bd := int(dec.BitDepth)
	if bd == 0 {
		bd = 16
	}
	sr := SampleRate
	if pb.Format != nil && pb.Format.SampleRate > 0 {
		sr = pb.Format.SampleRate
	}

	out := make([]float32, len(pb.Data))
	scale := 1.0 / float64(int64(1)<<(bd-1))
	for i, v := range pb.Data {
		out[i] = clamp(float32(float64(v) * scale))
	}

	return out, sr, nil
}

// SelfCheckCodec roundtrips a short buffer through a temp file to verify
// that scratch WAV encode/decode works on this system.
func SelfCheckCodec() error {
	tmp, err := os.CreateTemp("", "voicechat-codec-*.wav")
	if err != nil {
		return err
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	probe := make([]float32, SampleRate/100)
	for i := range probe {
		probe[i] = float32(i%64-32) / 64
	}

	if err := WriteWAV(path, probe, SampleRate); err != nil {
		return err
	}
	got, _, err := ReadWAV(path)
	if err != nil {
		return err
	}
	if len(got) != len(probe) {
		return fmt.Errorf("codec roundtrip: wrote %d samples, read %d", len(probe), len(got))
	}

	return nil
}

func clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
