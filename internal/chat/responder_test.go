package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockCompleter struct {
	reply    string
	err      error
	calls    int
	captured [][]Turn
}

func (m *mockCompleter) Complete(_ context.Context, turns []Turn) (string, error) {
	m.calls++
	snapshot := append([]Turn(nil), turns...)
	m.captured = append(m.captured, snapshot)
	return m.reply, m.err
}

func canned(prompt string) string { return "canned: " + prompt }

func newResponder(c Completer, online, available bool) *Responder {
	return &Responder{
		History:   NewHistory("sys"),
		Completer: c,
		Online:    func() bool { return online },
		Available: available,
		Fallback:  canned,
	}
}

func TestReplyOfflineUsesFallback(t *testing.T) {
	c := &mockCompleter{reply: "remote"}
	r := newResponder(c, false, true)

	got := r.Reply(context.Background(), "hello")

	require.Equal(t, "canned: hello", got)
	require.Zero(t, c.calls)
	require.Equal(t, 1, r.History.Len(), "offline turns must not touch the history")
}

func TestReplyUnavailableServiceUsesFallback(t *testing.T) {
	c := &mockCompleter{reply: "remote"}
	r := newResponder(c, true, false)

	got := r.Reply(context.Background(), "hello")

	require.Equal(t, "canned: hello", got)
	require.Zero(t, c.calls)
	require.Equal(t, 1, r.History.Len())
}

func TestReplySuccessAppendsBothTurns(t *testing.T) {
	c := &mockCompleter{reply: "sure thing"}
	r := newResponder(c, true, true)

	got := r.Reply(context.Background(), "do something")

	require.Equal(t, "sure thing", got)
	require.Equal(t, 1, c.calls)
	require.Equal(t, []Turn{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "do something"},
		{Role: RoleAssistant, Content: "sure thing"},
	}, r.History.Turns())
}

func TestReplyCompletionCarriesFullWindow(t *testing.T) {
	c := &mockCompleter{reply: "ok"}
	r := newResponder(c, true, true)

	r.Reply(context.Background(), "first")
	r.Reply(context.Background(), "second")

	require.Len(t, c.captured, 2)
	require.Equal(t, []Turn{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "ok"},
		{Role: RoleUser, Content: "second"},
	}, c.captured[1])
}

func TestReplyFailureKeepsUserTurnAndNoAssistantTurn(t *testing.T) {
	c := &mockCompleter{err: errors.New("api down")}
	r := newResponder(c, true, true)

	got := r.Reply(context.Background(), "question")

	require.Equal(t, "canned: question", got)
	require.Equal(t, []Turn{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "question"},
	}, r.History.Turns())
}

func TestReplyAfterFailureStillSeesPriorUserTurn(t *testing.T) {
	c := &mockCompleter{err: errors.New("api down")}
	r := newResponder(c, true, true)

	r.Reply(context.Background(), "lost call")

	c.err = nil
	c.reply = "recovered"
	got := r.Reply(context.Background(), "retry")

	require.Equal(t, "recovered", got)
	require.Equal(t, []Turn{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "lost call"},
		{Role: RoleUser, Content: "retry"},
	}, c.captured[1])
}
