package progress

// Listener receives the new percentage whenever it changes.
type Listener func(percent int)

// Notifier forwards percentages to a listener, suppressing repeats. The
// listener runs synchronously inside Report.
type Notifier struct {
	listener Listener
	last     int
}

// NewNotifier returns a Notifier whose last reported value is 0.
func NewNotifier(listener Listener) *Notifier {
	return &Notifier{listener: listener}
}

// Report calls the listener when percent differs from the last reported
// value and returns whether it did. A nil listener still tracks the value.
func (n *Notifier) Report(percent int) bool {
	if percent == n.last {
		return false
	}
	n.last = percent
	if n.listener != nil {
		n.listener(percent)
	}
	return true
}

// Last returns the most recently reported percentage.
func (n *Notifier) Last() int {
	return n.last
}
