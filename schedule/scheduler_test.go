package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSchedulerInvokeRepeating(t *testing.T) {
	cases := []struct {
		name   string
		delay  time.Duration
		period time.Duration
		ticks  []time.Duration
		want   int
	}{
		{"zero_delay_runs_next_tick", 0, 100 * time.Millisecond, []time.Duration{0}, 1},
		{"period_gates_runs", 0, 100 * time.Millisecond, []time.Duration{0, 50 * time.Millisecond, 100 * time.Millisecond, 150 * time.Millisecond, 200 * time.Millisecond}, 3},
		{"delay_postpones_first_run", 250 * time.Millisecond, 100 * time.Millisecond, []time.Duration{0, 200 * time.Millisecond, 250 * time.Millisecond}, 1},
		{"missed_periods_collapse", 0, 100 * time.Millisecond, []time.Duration{0, time.Second}, 2},
		{"no_period_runs_every_tick", 0, 0, []time.Duration{0, time.Millisecond, 2 * time.Millisecond}, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScheduler()
			s.Tick(epoch)
			runs := 0
			s.InvokeRepeating(c.delay, c.period, func() { runs++ })
			for _, d := range c.ticks {
				s.Tick(epoch.Add(d))
			}
			assert.Equal(t, c.want, runs)
		})
	}
}

func TestSchedulerCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	runs := 0
	var task *Task
	task = s.InvokeRepeating(0, 10*time.Millisecond, func() {
		runs++
		task.Cancel()
	})
	require.Equal(t, 1, s.Len())

	for i := 0; i < 5; i++ {
		s.Tick(epoch.Add(time.Duration(i) * 10 * time.Millisecond))
	}

	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, s.Len())
	assert.True(t, task.Cancelled())
}

func TestSchedulerTaskAddedDuringTick(t *testing.T) {
	s := NewScheduler()
	inner := 0
	s.InvokeRepeating(0, time.Hour, func() {
		s.InvokeRepeating(0, time.Hour, func() { inner++ })
	})

	s.Tick(epoch)
	assert.Equal(t, 0, inner)
	s.Tick(epoch.Add(time.Millisecond))
	assert.Equal(t, 1, inner)
}

func TestSchedulerCancelOtherTaskDuringTick(t *testing.T) {
	s := NewScheduler()
	var second *Task
	ran := false
	s.InvokeRepeating(0, 0, func() { second.Cancel() })
	second = s.InvokeRepeating(0, 0, func() { ran = true })

	s.Tick(epoch)
	assert.False(t, ran)
	assert.Equal(t, 1, s.Len())
}

func TestNilTaskCancel(t *testing.T) {
	var task *Task
	task.Cancel()
	assert.True(t, task.Cancelled())
}
