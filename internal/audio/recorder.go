// Package audio captures microphone input and handles the scratch WAV
// files the transcription paths work on.
package audio

import (
	"errors"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate is fixed for both capture modes; whisper and the remote
	// recognizer both expect 16 kHz mono.
	SampleRate = 16000

	frameSize = 320 // 20ms
	frameDur  = 20 * time.Millisecond
)

// ErrNoSpeech reports that no utterance crossed the energy threshold before
// the listen timeout ran out.
var ErrNoSpeech = errors.New("no speech detected")

type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordFixed captures exactly dur of mono audio at SampleRate.
func (r *Recorder) RecordFixed(dur time.Duration) ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, int(float64(SampleRate)*dur.Seconds()))

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	frames := int(dur / frameDur)
	for i := 0; i < frames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}
		out = append(out, buf...)
	}

	return out, nil
}

// PhraseConfig bounds a calibrated phrase capture.
type PhraseConfig struct {
	Calibration time.Duration // ambient-noise sampling before listening
	Timeout     time.Duration // max wait for speech to start
	PhraseLimit time.Duration // max phrase length once speech started
}

// RecordPhrase samples ambient noise for Calibration and derives an energy
// threshold from it, waits up to Timeout for speech to cross it, then
// records until 600ms of trailing silence or PhraseLimit.
func (r *Recorder) RecordPhrase(cfg PhraseConfig) ([]float32, error) {
	const (
		silenceTail     = 600 * time.Millisecond
		thresholdFactor = 1.5
		minThreshRMS    = 0.01
	)

	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var ambient float64
	calibFrames := int(cfg.Calibration / frameDur)
	for i := 0; i < calibFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}
		ambient += frameRMS(buf)
	}
	if calibFrames > 0 {
		ambient /= float64(calibFrames)
	}

	threshold := ambient * thresholdFactor
	if threshold < minThreshRMS {
		threshold = minThreshRMS
	}

	var (
		out           []float32
		speaking      bool
		silenceFrames int
	)
	waitFrames := int(cfg.Timeout / frameDur)
	phraseFrames := int(cfg.PhraseLimit / frameDur)
	tailFrames := int(silenceTail / frameDur)

	for i := 0; ; i++ {
		if !speaking && i >= waitFrames {
			return nil, ErrNoSpeech
		}

		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > threshold {
			if !speaking {
				speaking = true
				i = 0 // phrase limit counts from first speech
			}
			silenceFrames = 0
			out = append(out, buf...)
		} else if speaking {
			silenceFrames++
			if silenceFrames >= tailFrames {
				break
			}
			out = append(out, buf...)
		}

		if speaking && i >= phraseFrames {
			break
		}
	}

	if len(out) == 0 {
		return nil, ErrNoSpeech
	}

	return out, nil
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
