package tts

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <string.h>
#include <espeak-ng/speak_lib.h>

int
espeak_engine_init(int rate, int volume)
{
	if (espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0) < 0)
	{ return -1; }

	espeak_VOICE specs = { .languages = "en" };
	if (espeak_SetVoiceByProperties(&specs) != EE_OK)
	{ return -2; }

	espeak_SetParameter(espeakRATE, rate, 0);
	espeak_SetParameter(espeakVOLUME, volume, 0);

	return 0;
}

int
espeak_engine_say(const char *text)
{
	if (!text)
	{ return -1; }

	if (espeak_Synth(text, strlen(text) + 1, 0, 0, 0, espeakCHARS_AUTO, NULL, NULL) != EE_OK)
	{ return -2; }

	espeak_Synchronize();

	return 0;
}

void
espeak_engine_close(void)
{
	espeak_Terminate();
}
*/
import "C"

import (
	"fmt"
	log "log/slog"
	"unsafe"
)

const (
	speechRate   = 150 // words per minute
	speechVolume = 90  // percent
)

// Engine wraps the espeak-ng synthesizer. Construction is the only fatal
// speech failure; a synth error at runtime degrades to text-only output.
type Engine struct{}

func NewEngine() (*Engine, error) {
	rc := C.espeak_engine_init(C.int(speechRate), C.int(speechVolume))
	if rc != 0 {
		return nil, fmt.Errorf("espeak init failed: %d", int(rc))
	}
	return &Engine{}, nil
}

func (e *Engine) Close() {
	C.espeak_engine_close()
}

// Speak prints the assistant line and voices it.
func (e *Engine) Speak(text string) {
	if text == "" {
		return
	}

	fmt.Printf("Assistant: %s\n", text)

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	if rc := C.espeak_engine_say(ctext); rc != 0 {
		log.Warn("Text-to-speech failed, falling back to text-only output", "code", int(rc))
	}
}
