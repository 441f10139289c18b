// Package chat owns the conversation window and decides, per turn, between
// a remote completion and a canned offline reply.
package chat

import (
	"context"
	log "log/slog"
)

// Completer issues one completion over the full conversation window.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Responder selects the reply source for each prompt and is the only
// mutator of the conversation window.
type Responder struct {
	History   *History
	Completer Completer
	Online    func() bool
	Available bool // remote service accepted the credential at startup
	Fallback  func(prompt string) string
}

// Reply returns the assistant text for prompt. It never fails: offline
// operation, a missing credential and completion errors all degrade to the
// canned fallback. A failed completion is not retried; it leaves the user
// turn in the window and records no assistant turn, so a later successful
// call still sees the prompt.
func (r *Responder) Reply(ctx context.Context, prompt string) string {
	if !r.Online() {
		log.Warn("No internet connection, using offline responses")
		return r.Fallback(prompt)
	}
	if !r.Available {
		return r.Fallback(prompt)
	}

	r.History.Append(RoleUser, prompt)

	reply, err := r.Completer.Complete(ctx, r.History.Turns())
	if err != nil {
		log.Error("Chat completion failed", "err", err)
		return r.Fallback(prompt)
	}

	r.History.Append(RoleAssistant, reply)
	return reply
}
