package chat

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Turn struct {
	Role    string
	Content string
}

// maxTurns caps the rolling window, system turn included.
const maxTurns = 11

// History is the rolling conversation window. The first turn is the fixed
// system instruction and is never evicted; when the window overflows, the
// oldest non-system turn goes first.
type History struct {
	turns []Turn
}

func NewHistory(systemPrompt string) *History {
	return &History{
		turns: []Turn{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// Append adds a turn, then trims the window. Append-then-trim ordering
// matters: a prompt appended to a full window evicts the turn at index 1,
// not the prompt itself.
func (h *History) Append(role, content string) {
	h.turns = append(h.turns, Turn{Role: role, Content: content})
	if len(h.turns) > maxTurns {
		h.turns = append(h.turns[:1], h.turns[2:]...)
	}
}

// Turns returns the window in order. Callers must not mutate it.
func (h *History) Turns() []Turn { return h.turns }

func (h *History) Len() int { return len(h.turns) }
