package session

// State is the lifecycle position of a Session.
type State int

const (
	// StateEditing is the initial, re-entrant state.
	StateEditing State = iota
	// StateSubmitted is reached once a valid submission was handed off.
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// EventKind identifies what happened in a session.
type EventKind string

const (
	EventChange        EventKind = "change"
	EventTouch         EventKind = "touch"
	EventProgress      EventKind = "progress"
	EventSubmitBlocked EventKind = "submit_blocked"
	EventSubmitFailed  EventKind = "submit_failed"
	EventSubmitted     EventKind = "submitted"
	EventReset         EventKind = "reset"
)

// Event is delivered to the diagnostics hook.
type Event struct {
	Kind     EventKind
	Field    string
	Progress int
	Errors   int
	Err      error
}
