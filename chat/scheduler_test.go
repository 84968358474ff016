package chat

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsTask(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.Schedule("s1", time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled task did not run")
	}

	assert.Eventually(t, func() bool {
		return s.Pending("s1") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerCancelSession(t *testing.T) {
	s := NewScheduler()

	var fired atomic.Int32
	s.Schedule("s1", 30*time.Millisecond, func() { fired.Add(1) })
	s.Schedule("s1", 40*time.Millisecond, func() { fired.Add(1) })
	s.Schedule("other", time.Millisecond, func() { fired.Add(100) })

	require.Equal(t, 2, s.Pending("s1"))

	s.CancelSession("s1")
	assert.Equal(t, 0, s.Pending("s1"))

	// The other session's task still fires.
	assert.Eventually(t, func() bool {
		return fired.Load() == 100
	}, time.Second, 5*time.Millisecond)

	// Outwait the cancelled timers to prove they stay silent.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(100), fired.Load())
}

func TestSchedulerCancelAfterFireIsNoop(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.Schedule("s1", time.Millisecond, func() { close(done) })
	<-done

	s.CancelSession("s1")
	assert.Equal(t, 0, s.Pending("s1"))
}
