package viewer

// Keys the session reacts to, in the order a window should poll them.
var Keys = []rune{'1', '2', '3', '4', '5', '6', '7', '8', '9', ']', '[', 'O', 'A', 'L'}

// KeyEdges turns polled key state into presses: a key fires once when it
// goes down and not again until it has been released.
// The zero value is ready to use. Not safe for concurrent use.
type KeyEdges struct {
	down map[rune]bool
}

// Press records the current state of k and reports whether it was just pressed.
func (e *KeyEdges) Press(k rune, down bool) bool {
	if e.down == nil {
		e.down = make(map[rune]bool)
	}
	fired := down && !e.down[k]
	e.down[k] = down

	return fired
}

// Reset forgets all key state, e.g. after the window loses focus.
func (e *KeyEdges) Reset() {
	e.down = nil
}
