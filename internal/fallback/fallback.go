// Package fallback produces deterministic canned replies for turns where
// the remote model cannot be reached.
package fallback

import (
	"strings"
	"time"
)

// The trigger table is a slice so that iteration order is precedence order:
// the first trigger contained in the lower-cased prompt wins.
var table = []struct {
	trigger string
	reply   string
}{
	{"hello", "Hello! How can I help you today?"},
	{"hi", "Hi there! What can I do for you?"},
	{"how are you", "I'm functioning well, thank you for asking!"},
	{"bye", "Goodbye! Have a great day!"},
	{"thank", "You're welcome!"},
	{"help", "I'm here to help! What do you need assistance with?"},
	{"weather", "I'm sorry, I can't check the weather right now."},
	{"time", ""}, // rendered from the clock
	{"name", "I'm Ada, a voice-enabled chatbot."},
}

const defaultReply = "I'm currently operating in offline mode. I can only provide basic responses right now."

// Responder is stateless; Clock is injectable for the "time" reply and
// defaults to the wall clock.
type Responder struct {
	Clock func() time.Time
}

func (r Responder) Reply(prompt string) string {
	now := time.Now
	if r.Clock != nil {
		now = r.Clock
	}

	p := strings.ToLower(prompt)
	for _, e := range table {
		if !strings.Contains(p, e.trigger) {
			continue
		}
		if e.trigger == "time" {
			return "The current time is " + now().Format("15:04")
		}
		return e.reply
	}

	return defaultReply
}

// Reply matches prompt against the canned table using the wall clock.
func Reply(prompt string) string { return Responder{}.Reply(prompt) }
