package testing

import (
	"github.com/getmockd/mockwatchlogs/pkg/requestlog"
)

// AssertEventCount asserts that a stream holds exactly want events.
func (e *Emulator) AssertEventCount(group, stream string, want int) bool {
	e.t.Helper()
	got := len(e.Events(group, stream))
	if got != want {
		e.t.Errorf("expected %d events in %s/%s, got %d", want, group, stream, got)
		return false
	}
	return true
}

// AssertMessages asserts the exact message sequence of a stream.
func (e *Emulator) AssertMessages(group, stream string, want ...string) bool {
	e.t.Helper()
	events := e.Events(group, stream)
	if len(events) != len(want) {
		e.t.Errorf("expected %d messages in %s/%s, got %d", len(want), group, stream, len(events))
		return false
	}
	for i, ev := range events {
		if ev.Message != want[i] {
			e.t.Errorf("message %d in %s/%s: expected %q, got %q", i, group, stream, want[i], ev.Message)
			return false
		}
	}
	return true
}

// AssertGroupExists asserts that a log group exists.
func (e *Emulator) AssertGroupExists(name string) bool {
	e.t.Helper()
	if !e.HasGroup(name) {
		e.t.Errorf("expected log group %q to exist", name)
		return false
	}
	return true
}

// AssertCalled asserts that an action was dispatched exactly times times.
func (e *Emulator) AssertCalled(action string, times int) bool {
	e.t.Helper()
	got := len(e.Requests(&requestlog.Filter{Action: action}))
	if got != times {
		e.t.Errorf("expected %s to be called %d times, got %d", action, times, got)
		return false
	}
	return true
}
