package movement

// Timer is a cancellable countdown advanced inline by the tick. Cancelling is
// clearing the field; nothing fires after Cancel.
type Timer struct {
	remaining float64
	elapsed   float64
	active    bool
}

func (t *Timer) Start(d float64) {
	t.remaining = d
	t.elapsed = 0
	t.active = true
}

func (t *Timer) Cancel() {
	t.remaining = 0
	t.elapsed = 0
	t.active = false
}

func (t *Timer) Active() bool {
	return t.active
}

// Elapsed is the time advanced since Start.
func (t *Timer) Elapsed() float64 {
	return t.elapsed
}

// Advance counts the timer down by dt and reports whether it expired on this
// call. An inactive timer never expires.
func (t *Timer) Advance(dt float64) bool {
	if !t.active {
		return false
	}
	t.elapsed += dt
	t.remaining -= dt
	if t.remaining > 1e-9 {
		return false
	}
	t.active = false
	t.remaining = 0
	return true
}
