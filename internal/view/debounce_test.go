package view

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder collects committed values behind a mutex.
type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncerCommitsSettledValue(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)

	d.Trigger("a")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{"a"}, rec.snapshot())
}

func TestDebouncerOnlyLastKeystrokeWins(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)

	// Rapid keystrokes, each well inside the quiet period.
	for _, v := range []string{"a", "ad", "ada"} {
		d.Trigger(v)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{"ada"}, rec.snapshot())

	// Nothing further fires once settled.
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, []string{"ada"}, rec.snapshot())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)

	d.Trigger("a")
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, rec.snapshot())
}

func TestDebouncerReArmsAfterStop(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(10*time.Millisecond, rec.record)

	d.Trigger("a")
	d.Stop()
	d.Trigger("b")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{"b"}, rec.snapshot())
}
