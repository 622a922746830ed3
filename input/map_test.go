package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	fire    []bool
	looks   int
	reloads int
}

func (r *recorder) attach(m *Map) []func() {
	return []func(){
		m.OnFire(func(p bool) { r.fire = append(r.fire, p) }),
		m.OnLook(func() { r.looks++ }),
		m.OnReload(func() { r.reloads++ }),
	}
}

func TestMapEdges(t *testing.T) {
	cases := []struct {
		name    string
		frames  []State
		fire    []bool
		looks   int
		reloads int
	}{
		{
			name:   "press_hold_release",
			frames: []State{{}, {Fire: true}, {Fire: true}, {Fire: false}},
			fire:   []bool{true, false},
		},
		{
			name:   "held_on_first_frame",
			frames: []State{{Fire: true}, {Fire: true}},
			fire:   []bool{true},
		},
		{
			name:    "reload_on_press_only",
			frames:  []State{{}, {Reload: true}, {Reload: true}, {}, {Reload: true}},
			reloads: 2,
		},
		{
			name:   "press_on_panel_is_not_fire",
			frames: []State{{}, {Fire: true, PointerOverUI: true}, {Fire: true}, {}, {Fire: true}},
			fire:   []bool{true},
		},
		{
			name:   "held_fire_dragged_over_panel",
			frames: []State{{}, {Fire: true}, {Fire: true, PointerOverUI: true}, {PointerOverUI: true}},
			fire:   []bool{true, false},
		},
		{
			name:   "held_on_panel_first_frame",
			frames: []State{{Fire: true, PointerOverUI: true}, {Fire: true}, {}},
		},
		{
			name: "look_on_cursor_motion",
			frames: []State{
				{HasMouse: true, CursorX: 1, CursorY: 1},
				{HasMouse: true, CursorX: 1, CursorY: 1},
				{HasMouse: true, CursorX: 2, CursorY: 1},
				{HasMouse: false, CursorX: 5, CursorY: 5},
				{HasMouse: true, CursorX: 5, CursorY: 5},
			},
			looks: 3,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewMap()
			r := &recorder{}
			r.attach(m)
			for _, f := range c.frames {
				m.Update(f)
			}
			assert.Equal(t, c.fire, r.fire)
			assert.Equal(t, c.looks, r.looks)
			assert.Equal(t, c.reloads, r.reloads)
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	m := NewMap()
	r := &recorder{}
	unsubs := r.attach(m)
	for _, u := range unsubs {
		u()
		u()
	}

	m.Update(State{Fire: true, Reload: true, HasMouse: true})

	assert.Nil(t, r.fire)
	assert.Zero(t, r.looks)
	assert.Zero(t, r.reloads)
	assert.Zero(t, m.Fire.Subscribers())
}

func TestActionHandlerRemovedDuringPerform(t *testing.T) {
	var a Action[int]
	var second func()
	calls := 0
	a.Subscribe(func(int) { second() })
	second = a.Subscribe(func(int) { calls++ })

	a.Perform(1)

	assert.Zero(t, calls)
	assert.Equal(t, 1, a.Subscribers())
}

func TestActionOrder(t *testing.T) {
	var a Action[string]
	var got []string
	for _, name := range []string{"a", "b", "c"} {
		n := name
		a.Subscribe(func(v string) { got = append(got, n+v) })
	}

	a.Perform("!")

	assert.Equal(t, []string{"a!", "b!", "c!"}, got)
}
