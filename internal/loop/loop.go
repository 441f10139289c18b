// Package loop drives sequential turn-taking: listen, decide, speak,
// repeat.
package loop

import (
	"context"
	"strings"
)

const (
	WelcomeMessage  = "Hello! I'm Ada, your voice-enabled AI companion. How can I help you today?"
	FarewellMessage = "Thank you for chatting with me. Goodbye and have a great day!"

	repromptMessage = "Could you please repeat that?"
)

// Exit phrases must match the whole utterance, case-insensitively.
// "Bye" exits; "goodbye now" is just a prompt.
var exitPhrases = map[string]struct{}{
	"quit":    {},
	"exit":    {},
	"bye":     {},
	"goodbye": {},
	"stop":    {},
}

// Loop has two states, listening and terminated. It leaves listening only
// on an exit phrase or context cancellation; every recoverable sub-call
// failure degrades to a spoken message.
type Loop struct {
	Listen  func(ctx context.Context) (string, bool)
	Respond func(ctx context.Context, prompt string) string
	Speak   func(text string)
}

// Run speaks the welcome message and takes turns until an exit phrase. It
// returns true when the farewell was spoken, false when the context was
// cancelled mid-conversation.
func (l *Loop) Run(ctx context.Context) bool {
	l.Speak(WelcomeMessage)

	for {
		if ctx.Err() != nil {
			return false
		}

		text, ok := l.Listen(ctx)
		if !ok {
			if ctx.Err() != nil {
				return false
			}
			l.Speak(repromptMessage)
			continue
		}

		if IsExitPhrase(text) {
			l.Speak(FarewellMessage)
			return true
		}

		l.Speak(l.Respond(ctx, text))
	}
}

// IsExitPhrase reports whether text is exactly one of the exit phrases,
// ignoring case.
func IsExitPhrase(text string) bool {
	_, ok := exitPhrases[strings.ToLower(text)]
	return ok
}
