package input

// State is one frame of raw device input.
type State struct {
	Fire     bool
	Reload   bool
	CursorX  float64
	CursorY  float64
	HasMouse bool

	// PointerOverUI is set when the cursor is over an interface panel. A
	// fire press that starts there is left to the panel.
	PointerOverUI bool
}

// Map is the player's action map. It turns raw per-frame State into edge
// events: fire is reported on press and on release, look when the cursor
// moves and reload on press.
type Map struct {
	Fire   Action[bool]
	Look   Action[struct{}]
	Reload Action[struct{}]

	prev     State
	started  bool
	rawFire  bool
	captured bool
}

func NewMap() *Map {
	return &Map{
		Fire:   Action[bool]{Name: "fire"},
		Look:   Action[struct{}]{Name: "look"},
		Reload: Action[struct{}]{Name: "reload"},
	}
}

// Update compares s with the previous frame and performs the actions that
// changed.
func (m *Map) Update(s State) {
	switch {
	case !s.Fire:
		m.captured = false
	case s.PointerOverUI && !m.rawFire:
		m.captured = true
	}
	m.rawFire = s.Fire
	if m.captured {
		s.Fire = false
	}

	prev := m.prev
	m.prev = s
	if !m.started {
		m.started = true
		if s.HasMouse {
			m.Look.Perform(struct{}{})
		}
		if s.Fire {
			m.Fire.Perform(true)
		}
		if s.Reload {
			m.Reload.Perform(struct{}{})
		}
		return
	}

	if s.HasMouse && (s.CursorX != prev.CursorX || s.CursorY != prev.CursorY || !prev.HasMouse) {
		m.Look.Perform(struct{}{})
	}
	if s.Fire != prev.Fire {
		m.Fire.Perform(s.Fire)
	}
	if s.Reload && !prev.Reload {
		m.Reload.Perform(struct{}{})
	}
}

func (m *Map) OnFire(fn func(pressed bool)) func() {
	return m.Fire.Subscribe(fn)
}

func (m *Map) OnLook(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return m.Look.Subscribe(func(struct{}) { fn() })
}

func (m *Map) OnReload(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return m.Reload.Subscribe(func(struct{}) { fn() })
}
