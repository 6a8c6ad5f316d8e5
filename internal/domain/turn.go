package domain

// Turn roles as they appear on the wire. The frontend sends "user" for the
// patient side; anything else is treated as the assistant side.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in the conversation history. Turns are supplied
// by the caller and are read-only for the duration of a request.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IsPatient reports whether the turn came from the patient side.
func (t Turn) IsPatient() bool {
	return t.Role == RoleUser
}

// LastTurns returns the trailing window of at most n turns.
func LastTurns(history []Turn, n int) []Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
