package loop

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := New(zerolog.Nop())
	go l.Run()
	t.Cleanup(func() {
		l.Stop()
		<-l.Done()
	})
	return l
}

func TestPostRunsInOrder(t *testing.T) {
	l := startLoop(t)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Call(context.Background(), func() {}))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestCallWaitsForTask(t *testing.T) {
	l := startLoop(t)

	done := false
	err := l.Call(context.Background(), func() {
		time.Sleep(10 * time.Millisecond)
		done = true
	})
	require.NoError(t, err)
	assert.True(t, done)
}

func TestPanicIsRecovered(t *testing.T) {
	l := startLoop(t)

	require.True(t, l.Post(func() { panic("boom") }))

	ran := false
	require.NoError(t, l.Call(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestPostAfterStop(t *testing.T) {
	l := New(zerolog.Nop())
	go l.Run()
	l.Stop()
	<-l.Done()

	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Call(context.Background(), func() {}), ErrStopped)
	l.Stop()
}

func TestCallHonoursContext(t *testing.T) {
	l := startLoop(t)

	block := make(chan struct{})
	require.True(t, l.Post(func() { <-block }))
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Call(ctx, func() {}), context.DeadlineExceeded)
}

func TestPostNil(t *testing.T) {
	l := startLoop(t)
	assert.False(t, l.Post(nil))
}
