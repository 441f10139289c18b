// Package listen picks the transcription path for each turn: the advanced
// local model when connectivity and every listen-side capability line up,
// the remote basic recognizer otherwise.
package listen

import (
	"context"
	log "log/slog"
	"os"
	"strings"
	"time"

	"voicechat/internal/audio"
	"voicechat/internal/capability"
)

const (
	recordDuration = 5 * time.Second

	calibration   = 500 * time.Millisecond
	listenTimeout = 10 * time.Second
	phraseLimit   = 15 * time.Second
)

// Microphone captures audio from the default input device.
type Microphone interface {
	RecordFixed(dur time.Duration) ([]float32, error)
	RecordPhrase(cfg audio.PhraseConfig) ([]float32, error)
}

// Transcriber is the advanced local transcription backend.
type Transcriber interface {
	TranscribePCM(ctx context.Context, pcm []float32) (string, error)
}

// Recognizer is the remote basic recognition service.
type Recognizer interface {
	Recognize(ctx context.Context, samples []float32, sampleRate int) (string, error)
}

type Selector struct {
	Flags      capability.Flags
	Online     func() bool
	Mic        Microphone
	Advanced   Transcriber
	Basic      Recognizer
	ScratchDir string // "" means the system temp dir
	Cue        func() // optional, played right before each capture
}

// Listen records one utterance and returns its transcription. ok is false
// when nothing intelligible was captured; that is a normal turn outcome,
// not a fault. The advanced path is tried first whenever it is ready and
// wins if it yields any text; everything else falls through to the basic
// path.
func (s *Selector) Listen(ctx context.Context) (text string, ok bool) {
	online := s.Online()
	if !online {
		log.Warn("Operating in offline mode, using basic speech recognition")
	}

	if online && s.Flags.AdvancedReady() {
		text, err := s.listenAdvanced(ctx)
		if err != nil {
			log.Error("Advanced listening failed", "err", err)
		} else if text != "" {
			return text, true
		}
	}

	return s.listenBasic(ctx)
}

// listenAdvanced records a fixed window, roundtrips it through a scratch
// WAV and runs the local model. The scratch file is removed on every exit
// path.
func (s *Selector) listenAdvanced(ctx context.Context) (string, error) {
	s.cue()
	log.Info("Listening...", "path", "advanced")

	pcm, err := s.Mic.RecordFixed(recordDuration)
	if err != nil {
		return "", err
	}

	scratch, err := os.CreateTemp(s.ScratchDir, "utterance-*.wav")
	if err != nil {
		return "", err
	}
	path := scratch.Name()
	scratch.Close()
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Warn("Could not delete scratch file", "path", path, "err", err)
		}
	}()

	if err := audio.WriteWAV(path, pcm, audio.SampleRate); err != nil {
		return "", err
	}
	samples, _, err := audio.ReadWAV(path)
	if err != nil {
		return "", err
	}

	text, err := s.Advanced.TranscribePCM(ctx, samples)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text != "" {
		log.Info("Transcribed", "path", "advanced", "text", text)
	}
	return text, nil
}

func (s *Selector) listenBasic(ctx context.Context) (string, bool) {
	s.cue()
	log.Info("Listening...", "path", "basic")

	pcm, err := s.Mic.RecordPhrase(audio.PhraseConfig{
		Calibration: calibration,
		Timeout:     listenTimeout,
		PhraseLimit: phraseLimit,
	})
	if err != nil {
		log.Warn("Nothing captured", "err", err)
		return "", false
	}

	text, err := s.Basic.Recognize(ctx, pcm, audio.SampleRate)
	if err != nil {
		log.Warn("Sorry, couldn't understand that", "err", err)
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	log.Info("Transcribed", "path", "basic", "text", text)
	return text, true
}

func (s *Selector) cue() {
	if s.Cue != nil {
		s.Cue()
	}
}
