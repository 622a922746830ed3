package weapon

// InputLatch remembers the last fire button level. It holds a level, not a
// queue: a press and release inside one tick collapse to the release.
type InputLatch struct {
	pressed bool
}

// Set stores the level and reports whether it changed.
func (l *InputLatch) Set(pressed bool) bool {
	changed := l.pressed != pressed
	l.pressed = pressed
	return changed
}

// Pressed reports the latched level.
func (l *InputLatch) Pressed() bool {
	return l.pressed
}

// Reset releases the latch.
func (l *InputLatch) Reset() {
	l.pressed = false
}
